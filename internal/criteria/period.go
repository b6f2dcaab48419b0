package criteria

import "timetabling-UDP/internal/model"

// periodPenalty sums each assigned exam's period preference weight —
// the flat "how much does the timetable dislike this slot" signal.
type periodPenalty struct{ base }

func newPeriodPenalty(w float64) *periodPenalty {
	return &periodPenalty{base: newBase("PeriodPenalty", w, nextOwner())}
}

func (c *periodPenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += float64(p.Period.PenaltyWeight)
	}
	return total
}

func (c *periodPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *periodPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	delta := float64(p.Period.PenaltyWeight)
	if old, ok := a.GetValue(p.Exam.ID); ok {
		delta -= float64(old.Period.PenaltyWeight)
	}
	for _, examID := range conflicts {
		if old, ok := a.GetValue(examID); ok {
			delta -= float64(old.Period.PenaltyWeight)
		}
	}
	return delta
}

func (c *periodPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *periodPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += float64(p.Period.PenaltyWeight)
}
func (c *periodPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= float64(p.Period.PenaltyWeight)
}

// periodIndexPenalty prefers earlier periods, penalizing by the assigned
// period's ordinal index — a simple front-loading pressure that keeps the
// schedule from drifting its exams toward the end of the session.
type periodIndexPenalty struct{ base }

func newPeriodIndexPenalty(w float64) *periodIndexPenalty {
	return &periodIndexPenalty{base: newBase("PeriodIndexPenalty", w, nextOwner())}
}

func (c *periodIndexPenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += float64(p.Period.Index)
	}
	return total
}

func (c *periodIndexPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *periodIndexPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	delta := float64(p.Period.Index)
	if old, ok := a.GetValue(p.Exam.ID); ok {
		delta -= float64(old.Period.Index)
	}
	for _, examID := range conflicts {
		if old, ok := a.GetValue(examID); ok {
			delta -= float64(old.Period.Index)
		}
	}
	return delta
}

func (c *periodIndexPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *periodIndexPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += float64(p.Period.Index)
}
func (c *periodIndexPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= float64(p.Period.Index)
}

// periodSizePenalty penalizes placing a small exam in a period that
// otherwise holds much larger exams, a mild pressure toward grouping
// same-scale exams together so a period's room-turnover stays even.
type periodSizePenalty struct{ base }

func newPeriodSizePenalty(w float64) *periodSizePenalty {
	return &periodSizePenalty{base: newBase("PeriodSizePenalty", w, nextOwner())}
}

func (c *periodSizePenalty) full(a model.Assignment) float64 {
	perPeriod := make(map[int][]int)
	for _, p := range a.Placements() {
		perPeriod[p.Period.ID] = append(perPeriod[p.Period.ID], p.Exam.StudentCount)
	}
	total := 0.0
	for _, sizes := range perPeriod {
		if len(sizes) < 2 {
			continue
		}
		max := sizes[0]
		for _, s := range sizes[1:] {
			if s > max {
				max = s
			}
		}
		for _, s := range sizes {
			total += float64(max - s)
		}
	}
	return total
}

func (c *periodSizePenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

// GetValueDelta falls back to recomputation scoped to the affected
// period's exams only would require extra indexing this criterion doesn't
// keep; since periods rarely hold more than a handful of concurrent exams,
// a full recompute stays cheap in practice. A future incremental version
// would track per-period running max/sum directly in its Context.
func (c *periodSizePenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	before := c.full(a)
	after := c.full(cloneWithMove(a, p, conflicts))
	return after - before
}

// AfterAssigned/AfterUnassigned rescore the whole period-grouped histogram,
// for the same reason GetValueDelta does above: the per-period max shifts
// with every exam in the group, so there is no local update that stays
// correct without tracking running max/sum per period.
func (c *periodSizePenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *periodSizePenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}
func (c *periodSizePenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}
