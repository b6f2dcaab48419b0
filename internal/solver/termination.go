package solver

import "time"

// TerminationCondition decides, once per Metaheuristic-phase step, whether
// the solver should keep running: a small interface unifying a
// max-iteration bound, a wall-clock bound, and a completion check that
// might otherwise be scattered ad hoc across every phase driver.
type TerminationCondition interface {
	CanContinue(s *Solution) bool
}

// StopWhenComplete stops as soon as every exam has a placement.
type StopWhenComplete struct{}

func (StopWhenComplete) CanContinue(s *Solution) bool {
	return s.Assignment.NrUnassigned() > 0
}

// MaxIterations stops once Solution.Iteration reaches Limit.
type MaxIterations struct {
	Limit int
}

func (m MaxIterations) CanContinue(s *Solution) bool {
	return s.Iteration < m.Limit
}

// TimeOut stops once Solution.Elapsed reaches Limit.
type TimeOut struct {
	Limit time.Duration
}

func (t TimeOut) CanContinue(s *Solution) bool {
	return s.Elapsed < t.Limit
}

// AnyOf stops as soon as any wrapped condition says stop, so a run can be
// bounded by both an iteration cap and a wall-clock cap at once.
type AnyOf struct {
	Conditions []TerminationCondition
}

func (a AnyOf) CanContinue(s *Solution) bool {
	for _, c := range a.Conditions {
		if !c.CanContinue(s) {
			return false
		}
	}
	return true
}
