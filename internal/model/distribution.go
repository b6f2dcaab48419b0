package model

// DistributionType names the relation a DistributionConstraint enforces
// between its exams.
type DistributionType string

const (
	SamePeriod      DistributionType = "SAME_PERIOD"
	DifferentPeriod DistributionType = "DIFFERENT_PERIOD"
	SameDay         DistributionType = "SAME_DAY"
	Precedence      DistributionType = "PRECEDENCE"
	SameRoom        DistributionType = "SAME_ROOM"
	DifferentRoom   DistributionType = "DIFFERENT_ROOM"
	SameWeeks       DistributionType = "SAME_WEEKS"
)

// DistributionConstraint is a typed relation over a group of exams, with a
// hard/soft discipline and, for soft constraints, a penalty weight.
type DistributionConstraint struct {
	ID      int
	Type    DistributionType
	ExamIDs []int
	Hard    bool
	Penalty float64
}

// Violated evaluates this constraint against the current placements of its
// exams (placement may be nil for an unassigned exam, which never violates
// a distribution constraint by itself).
func (d *DistributionConstraint) Violated(placements map[int]*Placement) bool {
	var ps []*Placement
	for _, id := range d.ExamIDs {
		if p := placements[id]; p != nil {
			ps = append(ps, p)
		}
	}
	if len(ps) < 2 {
		return false
	}

	switch d.Type {
	case SamePeriod:
		return !allSamePeriod(ps)
	case DifferentPeriod:
		return hasSamePeriodPair(ps)
	case SameDay:
		return !allSameDay(ps)
	case Precedence:
		return !isPrecedenceOrdered(ps)
	case SameRoom:
		return !allShareARoom(ps)
	case DifferentRoom:
		return anyShareARoom(ps)
	case SameWeeks:
		return !allSameParity(ps)
	default:
		return false
	}
}

func allSamePeriod(ps []*Placement) bool {
	first := ps[0].Period.ID
	for _, p := range ps[1:] {
		if p.Period.ID != first {
			return false
		}
	}
	return true
}

func hasSamePeriodPair(ps []*Placement) bool {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Period.ID == ps[j].Period.ID {
				return true
			}
		}
	}
	return false
}

func allSameDay(ps []*Placement) bool {
	first := ps[0].Period.Day
	for _, p := range ps[1:] {
		if p.Period.Day != first {
			return false
		}
	}
	return true
}

// isPrecedenceOrdered requires exams to appear in strictly increasing period
// index in the order they were listed in ExamIDs.
func isPrecedenceOrdered(ps []*Placement) bool {
	for i := 1; i < len(ps); i++ {
		if ps[i].Period.Index <= ps[i-1].Period.Index {
			return false
		}
	}
	return true
}

func allShareARoom(ps []*Placement) bool {
	base := ps[0].RoomIDs()
	baseSet := make(map[int]bool, len(base))
	for _, id := range base {
		baseSet[id] = true
	}
	for _, p := range ps[1:] {
		found := false
		for _, id := range p.RoomIDs() {
			if baseSet[id] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anyShareARoom(ps []*Placement) bool {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].SharesRoomWith(ps[j]) {
				return true
			}
		}
	}
	return false
}

func allSameParity(ps []*Placement) bool {
	first := ps[0].Period.Index % 2
	for _, p := range ps[1:] {
		if p.Period.Index%2 != first {
			return false
		}
	}
	return true
}
