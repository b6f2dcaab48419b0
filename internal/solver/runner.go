package solver

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/model"
)

// Runner drives a Solver to completion, single- or multi-threaded: one
// Runner interface, selected by Config.Parallel.NrSolvers, behind which
// either a single goroutine or a worker pool with one promotion point
// operate identically from the Solver's point of view.
type Runner interface {
	Run(ctx context.Context, cfg RunConfig) (*Solution, error)
}

// RunConfig bundles what a Runner needs to build and drive one Solver
// instance: the model to solve, the termination condition that bounds
// every phase, and the master RNG seed each worker's *rand.Rand derives
// from (masterSeed + workerIndex).
type RunConfig struct {
	Model      *model.Model
	Terminate  TerminationCondition
	MasterSeed int64
	Listeners  *Listeners
}

// SingleThreadedRunner runs exactly one Solver against one
// SingleAssignment, the baseline path every CLI invocation uses unless
// Config.Parallel.NrSolvers > 1.
type SingleThreadedRunner struct{}

func NewSingleThreadedRunner() *SingleThreadedRunner { return &SingleThreadedRunner{} }

func (SingleThreadedRunner) Run(ctx context.Context, cfg RunConfig) (*Solution, error) {
	a := assignment.NewSingleAssignment(cfg.Model)
	solver := NewSolver(cfg.Model, a, rand.New(rand.NewSource(cfg.MasterSeed)), cfg.Listeners)
	return solver.Run(ctx, cfg.Terminate)
}

// ParallelRunner runs NrSolvers independent Solver instances concurrently
// via errgroup, each over its own private SingleAssignment seeded with
// masterSeed+workerIndex, reconciled against one shared best slot
// (sharedBest, backed by assignment.ParallelAssignment) through a single
// promotion point: a worker only ever touches its own assignment directly,
// and only ever touches the shared slot through promote/snapshot, so no
// worker observes or mutates another's in-progress assignment.
type ParallelRunner struct {
	NrSolvers int
}

func NewParallelRunner(nrSolvers int) *ParallelRunner {
	if nrSolvers < 1 {
		nrSolvers = 1
	}
	return &ParallelRunner{NrSolvers: nrSolvers}
}

// sharedBest is the parallel runner's single-writer promotion point: every
// worker may push an improvement here (promote) or pull the current best
// (snapshot), but the compare-and-copy in promote happens under one lock,
// so two workers racing to promote can never interleave and overwrite each
// other's write out of order.
type sharedBest struct {
	mu       sync.Mutex
	store    *assignment.ParallelAssignment
	value    float64
	hasValue bool
}

func newSharedBest(m *model.Model) *sharedBest {
	return &sharedBest{store: assignment.NewParallelAssignment(m)}
}

// promote adopts src as the shared best if value improves on (or equals,
// for the first write) whatever is currently held.
func (sb *sharedBest) promote(value float64, src *assignment.SingleAssignment) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.hasValue && value >= sb.value {
		return
	}
	sb.store.CopyFrom(src)
	sb.value = value
	sb.hasValue = true
}

// peek reports the shared best's value, or false if no worker has promoted
// yet.
func (sb *sharedBest) peek() (float64, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.value, sb.hasValue
}

func (sb *sharedBest) snapshot() *assignment.SingleAssignment {
	return sb.store.Snapshot()
}

// promotionListener is the per-worker SolutionListener that wires a worker
// into the shared promotion point: every BestSaved pushes that worker's new
// best up to shared if it is an improvement, and every SolutionUpdated
// checks whether another worker has since promoted something better and,
// if so, adopts it as this worker's own Best/BestValue, so the Final
// phase's restoreBest (see solver.go) restores the globally best
// assignment seen by any worker, not just this one's own local best.
type promotionListener struct {
	shared *sharedBest
}

func (p *promotionListener) BestSaved(s *Solution) {
	if live, ok := s.Assignment.(*assignment.SingleAssignment); ok {
		p.shared.promote(s.BestValue, live)
	}
}

func (p *promotionListener) BestRestored(*Solution) {}
func (p *promotionListener) BestCleared(*Solution)  {}

func (p *promotionListener) SolutionUpdated(s *Solution) {
	value, ok := p.shared.peek()
	if !ok || (s.HasBest() && value >= s.BestValue) {
		return
	}
	s.Best = p.shared.snapshot()
	s.BestValue = value
	s.hasBest = true
}

var _ SolutionListener = (*promotionListener)(nil)

func (r *ParallelRunner) Run(ctx context.Context, cfg RunConfig) (*Solution, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	results := make([]*Solution, r.NrSolvers)
	shared := newSharedBest(cfg.Model)

	for worker := 0; worker < r.NrSolvers; worker++ {
		worker := worker
		group.Go(func() error {
			seed := cfg.MasterSeed + int64(worker)
			a := assignment.NewSingleAssignment(cfg.Model)

			listeners := &Listeners{}
			listeners.Add(&promotionListener{shared: shared})
			if cfg.Listeners != nil {
				listeners.Add(cfg.Listeners)
			}

			solver := NewSolver(cfg.Model, a, rand.New(rand.NewSource(seed)), listeners)
			sol, err := solver.Run(groupCtx, cfg.Terminate)
			if err != nil {
				return err
			}
			results[worker] = sol
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, sol := range results[1:] {
		if sol == nil {
			continue
		}
		if best == nil || sol.Value() < best.Value() {
			best = sol
		}
	}
	return best, nil
}
