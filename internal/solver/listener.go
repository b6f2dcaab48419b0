package solver

import "sync"

// SolutionListener observes solver progress. All four hooks fire
// synchronously, in the fixed order listeners were registered, exactly
// once per triggering event. Implementations must not block; the solver
// calls these inline on its own goroutine (or, under the parallel runner,
// on whichever worker's promotion triggered them).
type SolutionListener interface {
	// BestSaved fires every time a new best assignment is captured,
	// after Solution.Best/BestValue have already been updated.
	BestSaved(s *Solution)
	// BestRestored fires when the solver reverts Assignment back to the
	// last saved Best (e.g. after a metaheuristic excursion that failed
	// to improve by the end of its budget).
	BestRestored(s *Solution)
	// BestCleared fires if the best snapshot is discarded outright (a
	// fresh run, or an explicit reset) rather than restored-from.
	BestCleared(s *Solution)
	// SolutionUpdated fires after every accepted move, win or lose,
	// giving listeners (reporting, progress logging) a steady heartbeat.
	SolutionUpdated(s *Solution)
}

// Listeners is an ordered multicast of SolutionListener, firing each hook
// against every registered listener in registration order. A *Listeners
// value is itself safe to register as a SolutionListener on another
// Listeners (see BestSaved etc. below), which is how ParallelRunner shares
// one caller-supplied Listeners across workers: every worker's dispatch
// into it takes the same mutex, so concurrent firing from several worker
// goroutines never races on the items slice.
type Listeners struct {
	mu    sync.Mutex
	items []SolutionListener
}

// Add registers a listener; later events fire against it after every
// listener already registered.
func (l *Listeners) Add(listener SolutionListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, listener)
}

func (l *Listeners) fireBestSaved(s *Solution) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, listener := range l.items {
		listener.BestSaved(s)
	}
}

func (l *Listeners) fireBestRestored(s *Solution) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, listener := range l.items {
		listener.BestRestored(s)
	}
}

func (l *Listeners) fireBestCleared(s *Solution) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, listener := range l.items {
		listener.BestCleared(s)
	}
}

func (l *Listeners) fireSolutionUpdated(s *Solution) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, listener := range l.items {
		listener.SolutionUpdated(s)
	}
}

// BestSaved, BestRestored, BestCleared and SolutionUpdated let a *Listeners
// itself satisfy SolutionListener, so one Listeners can be nested inside
// another.
func (l *Listeners) BestSaved(s *Solution)       { l.fireBestSaved(s) }
func (l *Listeners) BestRestored(s *Solution)    { l.fireBestRestored(s) }
func (l *Listeners) BestCleared(s *Solution)     { l.fireBestCleared(s) }
func (l *Listeners) SolutionUpdated(s *Solution) { l.fireSolutionUpdated(s) }

var _ SolutionListener = (*Listeners)(nil)
