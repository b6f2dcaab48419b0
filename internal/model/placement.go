package model

import "fmt"

// Placement is the value an Exam variable takes: a period and a (possibly
// split) set of rooms. Placements are immutable once built; moves build a
// fresh Placement rather than mutating one in place.
type Placement struct {
	Exam   *Exam
	Period *Period
	Rooms  []*Room
}

// NewPlacement builds a Placement. It does not validate feasibility —
// callers that need a guaranteed-feasible value should call Feasible.
func NewPlacement(exam *Exam, period *Period, rooms []*Room) *Placement {
	return &Placement{Exam: exam, Period: period, Rooms: rooms}
}

// TotalSeats sums the capacity of every room in the placement using the
// exam's preferred layout.
func (p *Placement) TotalSeats() int {
	total := 0
	for _, r := range p.Rooms {
		total += r.CapacityFor(p.Exam.AltLayout)
	}
	return total
}

// RoomIDs returns the placement's room ids in p.Rooms order (not sorted;
// callers needing a canonical key sort the result themselves).
func (p *Placement) RoomIDs() []int {
	ids := make([]int, len(p.Rooms))
	for i, r := range p.Rooms {
		ids[i] = r.ID
	}
	return ids
}

// Feasible checks every hard invariant: enough seats, every room available
// in the period, the period allowed for the exam, and the split count
// within the configured maximum.
func (p *Placement) Feasible(m *Model) error {
	if p.TotalSeats() < p.Exam.StudentCount {
		return fmt.Errorf("placement for exam %d: %d seats, need %d", p.Exam.ID, p.TotalSeats(), p.Exam.StudentCount)
	}
	if !p.Period.ExamAvailable(p.Exam.ID) {
		return fmt.Errorf("placement for exam %d: period %d not allowed", p.Exam.ID, p.Period.ID)
	}
	for _, r := range p.Rooms {
		if !r.Available(p.Period.ID) || !p.Period.RoomAvailable(r.ID) {
			return fmt.Errorf("placement for exam %d: room %d unavailable in period %d", p.Exam.ID, r.ID, p.Period.ID)
		}
	}
	if len(p.Rooms) > m.Config.MaxRoomSplit {
		return fmt.Errorf("placement for exam %d: %d rooms exceeds split maximum %d", p.Exam.ID, len(p.Rooms), m.Config.MaxRoomSplit)
	}
	return nil
}

// SharesRoomWith reports whether two placements overlap in at least one
// room, used by the SameRoom/DifferentRoom distribution checks.
func (p *Placement) SharesRoomWith(other *Placement) bool {
	if other == nil {
		return false
	}
	for _, r1 := range p.Rooms {
		for _, r2 := range other.Rooms {
			if r1.ID == r2.ID {
				return true
			}
		}
	}
	return false
}
