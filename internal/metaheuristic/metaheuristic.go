// Package metaheuristic implements the acceptance rules that decide
// whether a candidate internal/neighbour.Neighbour gets committed:
// HillClimbing (non-worsening moves only), SimulatedAnnealing (Metropolis
// acceptance over a cooling schedule), GreatDeluge (lowering-bound
// acceptance), and Finalization (a one-shot switch back to non-worsening
// acceptance once the phase controller signals FinalizeRequested).
package metaheuristic

import (
	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/neighbour"
)

// Acceptor decides whether to commit a neighbour against the current
// assignment, returning whether it was accepted. Implementations must
// apply n.Assign themselves when accepting; rejecting leaves a untouched.
type Acceptor interface {
	Accept(iter int, m *model.Model, a model.Assignment, n neighbour.Neighbour) bool
}

// HillClimbing accepts a neighbour only if it does not worsen total value
// (Value() <= 0), the simplest and strictest acceptor, used both as its
// own phase and as the body of Finalization once requested.
type HillClimbing struct{}

func NewHillClimbing() *HillClimbing { return &HillClimbing{} }

func (h *HillClimbing) Accept(iter int, m *model.Model, a model.Assignment, n neighbour.Neighbour) bool {
	if n.Value(m, a) > 0 {
		return false
	}
	n.Assign(iter, a)
	return true
}
