package criteria

import "timetabling-UDP/internal/model"

// roomPenalty sums each placement's rooms' per-exam preference weight.
type roomPenalty struct{ base }

func newRoomPenalty(w float64) *roomPenalty {
	return &roomPenalty{base: newBase("RoomPenalty", w, nextOwner())}
}

func (c *roomPenalty) score(p *model.Placement) float64 {
	total := 0.0
	for _, r := range p.Rooms {
		total += float64(r.PreferenceFor(p.Exam.ID))
	}
	return total
}

func (c *roomPenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.score(p)
	}
	return total
}

func (c *roomPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *roomPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
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

func (c *roomPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }

// AfterAssigned/AfterUnassigned patch the running total by score(p)
// alone, since score only looks at p's own rooms.
func (c *roomPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.score(p)
}
func (c *roomPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.score(p)
}

// roomSizePenalty penalizes wasted seats: the gap between a placement's
// total capacity and the exam's actual student count.
type roomSizePenalty struct{ base }

func newRoomSizePenalty(w float64) *roomSizePenalty {
	return &roomSizePenalty{base: newBase("RoomSizePenalty", w, nextOwner())}
}

func (c *roomSizePenalty) score(p *model.Placement) float64 {
	waste := p.TotalSeats() - p.Exam.StudentCount
	if waste < 0 {
		return 0
	}
	return float64(waste)
}

func (c *roomSizePenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.score(p)
	}
	return total
}

func (c *roomSizePenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *roomSizePenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
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

func (c *roomSizePenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *roomSizePenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.score(p)
}
func (c *roomSizePenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.score(p)
}

// roomSplitPenalty counts placements spread over more than one room (1
// exam split over two rooms scores exactly 1).
type roomSplitPenalty struct{ base }

func newRoomSplitPenalty(w float64) *roomSplitPenalty {
	return &roomSplitPenalty{base: newBase("RoomSplitPenalty", w, nextOwner())}
}

func (c *roomSplitPenalty) score(p *model.Placement) float64 {
	if len(p.Rooms) > 1 {
		return 1
	}
	return 0
}

func (c *roomSplitPenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.score(p)
	}
	return total
}

func (c *roomSplitPenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *roomSplitPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
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

func (c *roomSplitPenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, float64(len(a.Placements())) }
func (c *roomSplitPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.score(p)
}
func (c *roomSplitPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.score(p)
}

// roomSplitDistancePenalty sums, for split placements, the physical
// distance between every pair of rooms used — a far-apart split is worse
// than an adjacent one even at the same room count.
type roomSplitDistancePenalty struct {
	base
	model *model.Model
}

func newRoomSplitDistancePenalty(m *model.Model, w float64) *roomSplitDistancePenalty {
	return &roomSplitDistancePenalty{base: newBase("RoomSplitDistancePenalty", w, nextOwner()), model: m}
}

func (c *roomSplitDistancePenalty) score(p *model.Placement) float64 {
	if len(p.Rooms) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(p.Rooms); i++ {
		for j := i + 1; j < len(p.Rooms); j++ {
			total += c.model.RoomDistance(p.Rooms[i].ID, p.Rooms[j].ID)
		}
	}
	return total
}

func (c *roomSplitDistancePenalty) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.score(p)
	}
	return total
}

func (c *roomSplitDistancePenalty) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *roomSplitDistancePenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
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

func (c *roomSplitDistancePenalty) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }
func (c *roomSplitDistancePenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.score(p)
}
func (c *roomSplitDistancePenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.score(p)
}
