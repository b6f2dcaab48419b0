package criteria

import "timetabling-UDP/internal/model"

// largeExamsPenalty penalizes scheduling a large exam (Exam.Large, set by
// Model.Finalize from Config.LargeExamSize) after the midpoint (half the
// highest period index currently in use), by its index distance past it —
// large exams are the hardest to re-schedule if a
// conflict surfaces late, so pushing them early gives repair more room.
type largeExamsPenalty struct {
	base
	midpoint int // not read or written; full() recomputes the midpoint each call
}

func newLargeExamsPenalty(w float64) *largeExamsPenalty {
	return &largeExamsPenalty{base: newBase("LargeExamsPenalty", w, nextOwner())}
}

func (c *largeExamsPenalty) full(a model.Assignment) float64 {
	placements := a.Placements()
	maxIndex := 0
	for _, p := range placements {
		if p.Period.Index > maxIndex {
			maxIndex = p.Period.Index
		}
	}
	mid := maxIndex / 2
	total := 0.0
	for _, p := range placements {
		if p.Exam.Large && p.Period.Index > mid {
			total += float64(p.Period.Index - mid)
		}
	}
	return total
}

func (c *largeExamsPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *largeExamsPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	before := c.full(a)
	after := c.full(cloneWithMove(a, p, conflicts))
	return after - before
}

// AfterAssigned/AfterUnassigned rescore from scratch: the midpoint is a
// function of the max period index across every placement, so a single
// assign/unassign can shift it for every large exam at once.
func (c *largeExamsPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *largeExamsPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}
func (c *largeExamsPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}

// perturbationPenalty sums, over exams with a nonzero Exam.AveragePeriod,
// how far beyond one period their current period index lies from it
// (|index - AveragePeriod| - 1, or 0 within one period) — a proxy for
// "how far has this solve wandered from the suggested starting point",
// used when re-solving around a previously published timetable.
// Exam.AveragePeriod is the only per-exam reference value the model
// carries.
type perturbationPenalty struct{ base }

func newPerturbationPenalty(w float64) *perturbationPenalty {
	return &perturbationPenalty{base: newBase("PerturbationPenalty", w, nextOwner())}
}

func (c *perturbationPenalty) score(p *model.Placement) float64 {
	if p.Exam.AveragePeriod == 0 {
		return 0
	}
	d := float64(p.Period.Index) - p.Exam.AveragePeriod
	if d < 0 {
		d = -d
	}
	if d <= 1 {
		return 0
	}
	return d - 1
}

func (c *perturbationPenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.score(p)
	}
	return total
}

func (c *perturbationPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *perturbationPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	delta := c.score(p)
	if old, ok := a.GetValue(p.Exam.ID); ok {
		delta -= c.score(old)
	}
	for _, examID := range conflicts {
		if old, ok := a.GetValue(examID); ok {
			delta -= c.score(old)
		}
	}
	return delta
}

func (c *perturbationPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *perturbationPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.score(p)
}
func (c *perturbationPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.score(p)
}
