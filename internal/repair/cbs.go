package repair

import (
	"timetabling-UDP/internal/model"
)

// CBS (conflict-based statistics) records, per exam id, how many times
// assigning some placement has historically caused that exam to later be
// unassigned (evicted by a subsequent Assign). A high cbs(examID) means
// "this exam keeps getting bumped"; the selector below folds it into its
// placement score as a mild repulsion so it stops repeatedly trying the
// same doomed spot, mirroring RecolorDUDs's block-usage-based retry order
// generalized from "which block" to "which exam was hurt".
type CBS struct {
	evictionCount map[int]int
}

// NewCBS returns an empty conflict-based-statistics tracker.
func NewCBS() *CBS {
	return &CBS{evictionCount: make(map[int]int)}
}

// RecordEviction increments the count for an exam that was just bumped
// out of its placement by a repair move.
func (c *CBS) RecordEviction(examID int) {
	c.evictionCount[examID]++
}

// Score returns the accumulated eviction count for an exam, 0 if never
// evicted.
func (c *CBS) Score(examID int) int {
	return c.evictionCount[examID]
}

// CBSTabuSelector resolves unassigned exams left by construction. For
// each unassigned exam, every feasible placement is scored as
// weightedDelta + beta*cbs(evicted exams), tabu moves are skipped unless
// they are the only option left, and the selector stops once nrUnassigned
// reaches 0 or the iteration budget is exhausted.
type CBSTabuSelector struct {
	cbs   *CBS
	tabu  *TabuList
	beta  float64
}

// NewCBSTabuSelector builds a selector with a tabu list of the given size
// and a CBS penalty weight beta.
func NewCBSTabuSelector(tabuSize int, beta float64) *CBSTabuSelector {
	return &CBSTabuSelector{cbs: NewCBS(), tabu: NewTabuList(tabuSize), beta: beta}
}

// Run attempts to place every exam in unassigned, taking them in the order
// given and re-queueing each evicted exam at the back, returning the ids
// still unassigned after maxIterations selector steps or once the queue is
// empty, whichever comes first.
func (s *CBSTabuSelector) Run(m *model.Model, a model.Assignment, startIter int, unassigned []int, maxIterations int) []int {
	iter := startIter
	remaining := make([]int, len(unassigned))
	copy(remaining, unassigned)
	var unplaceable []int

	for step := 0; step < maxIterations && len(remaining) > 0; step++ {
		examID := remaining[0]
		remaining = remaining[1:]
		exam := m.Exams[examID]

		placement, conflicts := s.bestPlacement(m, a, exam)
		if placement == nil {
			// No feasible placement at all (room/period constraints too
			// tight); leave for the metaheuristic phase, which can also
			// reconsider other exams' placements to make room.
			unplaceable = append(unplaceable, examID)
			continue
		}

		for _, conflictID := range conflicts {
			s.cbs.RecordEviction(conflictID)
			remaining = append(remaining, conflictID)
		}
		s.tabu.Add(placement)
		iter++
		a.Assign(iter, placement)
	}

	return append(remaining, unplaceable...)
}

func (s *CBSTabuSelector) bestPlacement(m *model.Model, a model.Assignment, exam *model.Exam) (*model.Placement, []int) {
	domain := exam.Domain(m)
	if len(domain) == 0 {
		return nil, nil
	}

	var best *model.Placement
	var bestConflicts []int
	bestScore := 0.0
	found := false

	for _, p := range domain {
		conflicts := a.ConflictsFor(p)
		isTabu := s.tabu.Contains(p)

		score := s.weightedDelta(m, a, p, conflicts)
		for _, conflictID := range conflicts {
			score += s.beta * float64(s.cbs.Score(conflictID))
		}
		// Small nudge proportional to the number of exams this placement
		// would evict, breaking ties between equally-scored placements in
		// favor of the one that disturbs the fewest other exams. Kept well
		// below any real criterion weight so it never overrides an actual
		// scoring preference.
		score += float64(len(conflicts)) * 1e-6
		if isTabu {
			score += 1e6 // strong but not infinite penalty: allowed if nothing else works
		}

		if !found || score < bestScore {
			best, bestConflicts, bestScore, found = p, conflicts, score, true
		}
	}
	return best, bestConflicts
}

func (s *CBSTabuSelector) weightedDelta(m *model.Model, a model.Assignment, p *model.Placement, conflicts []int) float64 {
	total := 0.0
	for _, c := range m.Criteria {
		total += c.GetWeight() * c.GetValueDelta(a, p, conflicts)
	}
	return total
}
