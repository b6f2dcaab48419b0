package metaheuristic

import (
	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/neighbour"
)

// FinalizeRequested is a one-shot message modeled as an explicit value
// rather than a held function reference: the phase controller posts it
// once, Finalization consumes it on its next Accept call and reports back
// via Consumed, and the controller reasserts the outer termination
// condition afterward.
type FinalizeRequested struct {
	consumed bool
}

// Consumed reports whether this request has already been acted on.
func (f *FinalizeRequested) Consumed() bool { return f.consumed }

// Finalization wraps any Acceptor (normally the same SimulatedAnnealing or
// GreatDeluge instance the run has been using) and, for exactly one
// Accept call after a FinalizeRequested message arrives, substitutes a
// strict HillClimbing acceptance instead of the wrapped rule's own.
type Finalization struct {
	inner   Acceptor
	hc      *HillClimbing
	pending *FinalizeRequested
}

func NewFinalization(inner Acceptor) *Finalization {
	return &Finalization{inner: inner, hc: NewHillClimbing()}
}

// RequestFinalize posts a one-shot finalize message; the next Accept call
// uses strict hill-climbing acceptance and marks the message consumed.
func (f *Finalization) RequestFinalize() *FinalizeRequested {
	f.pending = &FinalizeRequested{}
	return f.pending
}

func (f *Finalization) Accept(iter int, m *model.Model, a model.Assignment, n neighbour.Neighbour) bool {
	if f.pending != nil && !f.pending.consumed {
		f.pending.consumed = true
		return f.hc.Accept(iter, m, a, n)
	}
	return f.inner.Accept(iter, m, a, n)
}
