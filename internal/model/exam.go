package model

import "sort"

// PeriodPreference pairs a period with a preference weight (0 = neutral,
// negative = preferred, positive = discouraged) or marks it hard-disallowed.
type PeriodPreference struct {
	PeriodID int
	Weight   int
	Hard     bool // Hard==true and Weight!=0 means this period is forbidden
}

// RoomPreference pairs a room with a preference weight.
type RoomPreference struct {
	RoomID int
	Weight int
	Hard   bool
}

// Exam is the scheduling variable. It owns no pointers to Student/Instructor
// objects directly — only their ids — so the Model is the single place that
// resolves cross references (no pointer cycles between entities).
type Exam struct {
	ID           int
	Name         string
	StudentCount int
	MinRooms     int

	AllowedPeriods []PeriodPreference
	AllowedRooms   []RoomPreference

	StudentIDs      []int
	InstructorIDs   []int
	DistributionIDs []int

	Large         bool
	AveragePeriod float64
	AltLayout     bool
}

// candidate is a scored (period, rooms) pair used while building Domain().
type candidate struct {
	placement *Placement
	score     float64
}

// Domain enumerates every feasible Placement for this exam against m, sorted
// by decreasing heuristic score (period preference x room preference x size
// fit).
func (e *Exam) Domain(m *Model) []*Placement {
	var candidates []candidate

	for _, pp := range e.AllowedPeriods {
		if pp.Hard && pp.Weight != 0 {
			continue
		}
		period := m.Periods[pp.PeriodID]
		if period == nil || !period.ExamAvailable(e.ID) {
			continue
		}

		roomSets := m.feasibleRoomSets(e, period)
		for _, rooms := range roomSets {
			p := NewPlacement(e, period, rooms)
			if p.Feasible(m) != nil {
				continue
			}
			candidates = append(candidates, candidate{
				placement: p,
				score:     heuristicScore(e, pp, rooms),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]*Placement, len(candidates))
	for i, c := range candidates {
		out[i] = c.placement
	}
	return out
}

// heuristicScore combines period preference, room preference, and size fit
// into a single static score used only to order Domain(); higher is better.
func heuristicScore(e *Exam, pp PeriodPreference, rooms []*Room) float64 {
	score := -float64(pp.Weight) * 10
	seats := 0
	roomScore := 0
	for _, r := range rooms {
		seats += r.CapacityFor(e.AltLayout)
		roomScore -= r.PreferenceFor(e.ID)
	}
	score += float64(roomScore)
	if seats > 0 {
		fit := float64(e.StudentCount) / float64(seats)
		// reward tight fits without overshooting capacity too far
		score += fit * 5
	}
	return score
}
