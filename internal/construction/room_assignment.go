package construction

import (
	"sort"

	"timetabling-UDP/internal/model"
)

// ExamConstruction assigns rooms to every exam that a ColoringConstruction
// pass has already given a period, committing each successful placement to
// an Assignment. Exams with no feasible room set in their assigned period
// are returned as a DUD list for the repair phase to resolve with full
// freedom to also reconsider the period.
type ExamConstruction struct{}

func NewExamConstruction() *ExamConstruction { return &ExamConstruction{} }

// Run commits a placement for every exam in periodOf (examID -> periodID)
// that has at least one feasible room combination, in decreasing
// StudentCount order (largest, hardest-to-place exams claim rooms
// first). It returns the ids of exams left unassigned.
func (c *ExamConstruction) Run(m *model.Model, a model.Assignment, iter int, periodOf map[int]int) []int {
	ids := make([]int, 0, len(periodOf))
	for id := range periodOf {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ei, ej := m.Exams[ids[i]], m.Exams[ids[j]]
		if ei.StudentCount != ej.StudentCount {
			return ei.StudentCount > ej.StudentCount
		}
		return ids[i] < ids[j]
	})

	var dud []int
	for _, examID := range ids {
		exam := m.Exams[examID]
		period := m.Periods[periodOf[examID]]
		if period == nil {
			dud = append(dud, examID)
			continue
		}

		placement := bestPlacementInPeriod(m, a, exam, period)
		if placement == nil {
			dud = append(dud, examID)
			continue
		}
		a.Assign(iter, placement)
	}
	return dud
}

// bestPlacementInPeriod scores every placement from exam.Domain restricted
// to period by occupancy fit ("maximize occupancy, prefer smaller rooms
// that still fit") and returns the best one not already conflicting with
// an occupant the caller would rather not evict during construction
// (construction only places into genuinely free rooms; eviction is a
// repair/metaheuristic concern).
func bestPlacementInPeriod(m *model.Model, a model.Assignment, exam *model.Exam, period *model.Period) *model.Placement {
	var best *model.Placement
	bestScore := -1.0

	for _, p := range exam.Domain(m) {
		if p.Period.ID != period.ID {
			continue
		}
		if len(a.ConflictsFor(p)) > 0 {
			continue
		}
		score := occupancyScore(exam, p)
		if best == nil || score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func occupancyScore(exam *model.Exam, p *model.Placement) float64 {
	seats := p.TotalSeats()
	if seats == 0 {
		return -1
	}
	occupancy := float64(exam.StudentCount) / float64(seats)
	switch {
	case occupancy > 1:
		return -100
	case occupancy >= 0.8:
		return 50
	case occupancy >= 0.6:
		return 35
	case occupancy >= 0.4:
		return 20
	default:
		return 5
	}
}
