package criteria

import "timetabling-UDP/internal/model"

// distributionPenalty sums the configured Penalty of every soft
// DistributionConstraint currently violated. Hard distribution
// constraints (Hard==true) are skipped here — their violations are a
// repair-phase conflict signal, not a scored penalty; a deployment that
// wants to score a hard constraint's violations instead registers it as
// a distinct, separately weighted criterion.
type distributionPenalty struct {
	base
	model *model.Model
}

func newDistributionPenalty(m *model.Model, w float64) *distributionPenalty {
	return &distributionPenalty{base: newBase("DistributionPenalty", w, nextOwner()), model: m}
}

func (c *distributionPenalty) full(a model.Assignment) float64 {
	placements := a.Placements()
	total := 0.0
	for _, d := range c.model.Distributions {
		if d.Hard {
			continue
		}
		if d.Violated(placements) {
			total += d.Penalty
		}
	}
	return total
}

func (c *distributionPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

// GetValueDelta recomputes only the distribution constraints that mention
// one of the affected exams, since Violated() itself is O(constraint size)
// and the affected set is usually small.
func (c *distributionPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	affected := map[int]bool{p.Exam.ID: true}
	for _, id := range conflicts {
		affected[id] = true
	}

	before := a.Placements()
	after := cloneWithMove(a, p, conflicts).Placements()

	delta := 0.0
	for _, d := range c.model.Distributions {
		if d.Hard {
			continue
		}
		touches := false
		for _, id := range d.ExamIDs {
			if affected[id] {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}
		wasViolated := d.Violated(before)
		isViolated := d.Violated(after)
		if wasViolated && !isViolated {
			delta -= d.Penalty
		} else if !wasViolated && isViolated {
			delta += d.Penalty
		}
	}
	return delta
}

func (c *distributionPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }

// touchingDelta mirrors GetValueDelta's "only constraints mentioning
// examID" scoping, but compares two concrete placement maps instead of
// shadowing a hypothetical move, since AfterAssigned/AfterUnassigned only
// know about the one exam that just changed.
func (c *distributionPenalty) touchingDelta(examID int, before, after map[int]*model.Placement) float64 {
	delta := 0.0
	for _, d := range c.model.Distributions {
		if d.Hard {
			continue
		}
		touches := false
		for _, id := range d.ExamIDs {
			if id == examID {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}
		wasViolated := d.Violated(before)
		isViolated := d.Violated(after)
		if wasViolated && !isViolated {
			delta -= d.Penalty
		} else if !wasViolated && isViolated {
			delta += d.Penalty
		}
	}
	return delta
}

func (c *distributionPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	after := a.Placements()
	before := a.Placements()
	delete(before, p.Exam.ID)
	c.total(a, func() float64 { return c.full(a) }).value += c.touchingDelta(p.Exam.ID, before, after)
}
func (c *distributionPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	before := a.Placements()
	before[p.Exam.ID] = p
	after := a.Placements()
	c.total(a, func() float64 { return c.full(a) }).value += c.touchingDelta(p.Exam.ID, before, after)
}
