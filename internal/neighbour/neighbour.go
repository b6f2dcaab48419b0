// Package neighbour implements the reversible-delta moves that every
// search phase (repair, hill-climbing, metaheuristics) applies against an
// Assignment: room and period reassignment moves generalized from
// "recolor one session" into a family of Neighbour implementations that
// can be weighed by the criteria framework before being committed.
package neighbour

import (
	"math/rand"
	"sort"

	"timetabling-UDP/internal/model"
)

// Neighbour is a candidate change to the assignment: a new Placement for
// one exam, plus whichever currently-assigned exams that placement would
// evict. Value/Conflicts are pure functions of the model's criteria and
// the current assignment; Assign commits exactly one change.
type Neighbour interface {
	// Placement is the candidate value this neighbour would install.
	Placement() *model.Placement
	// Conflicts lists exams that must be unassigned for Placement to hold.
	Conflicts(a model.Assignment) []int
	// Value returns the total weighted delta this neighbour would cause,
	// Σ w_i · criterion.GetValueDelta(a, Placement, Conflicts).
	Value(m *model.Model, a model.Assignment) float64
	// Assign commits this neighbour: conflicts are unassigned, then
	// Placement is assigned, both at the given iteration.
	Assign(iter int, a model.Assignment)
}

// placementNeighbour is the concrete Neighbour every selector in this
// package returns; the different "kinds" (random/room/time/split) differ
// only in how they are generated, not in how they are scored or applied.
type placementNeighbour struct {
	examID    int
	placement *model.Placement
}

func (n *placementNeighbour) Placement() *model.Placement { return n.placement }

func (n *placementNeighbour) Conflicts(a model.Assignment) []int {
	return a.ConflictsFor(n.placement)
}

func (n *placementNeighbour) Value(m *model.Model, a model.Assignment) float64 {
	conflicts := n.Conflicts(a)
	total := 0.0
	for _, c := range m.Criteria {
		total += c.GetWeight() * c.GetValueDelta(a, n.placement, conflicts)
	}
	return total
}

func (n *placementNeighbour) Assign(iter int, a model.Assignment) {
	a.Assign(iter, n.placement)
}

// ExamRandomMove picks a uniformly random exam and a uniformly random
// member of its current domain, the baseline diversifying move every
// metaheuristic acceptance rule is evaluated against.
type ExamRandomMove struct {
	rng *rand.Rand
}

func NewExamRandomMove(rng *rand.Rand) *ExamRandomMove {
	return &ExamRandomMove{rng: rng}
}

// Select returns a random neighbour, or nil if the model has no exams or
// the chosen exam's domain is empty (fully constrained out).
func (s *ExamRandomMove) Select(m *model.Model, a model.Assignment) Neighbour {
	exam := randomExam(m, s.rng)
	if exam == nil {
		return nil
	}
	domain := exam.Domain(m)
	if len(domain) == 0 {
		return nil
	}
	p := domain[s.rng.Intn(len(domain))]
	return &placementNeighbour{examID: exam.ID, placement: p}
}

// ExamRoomMove keeps an exam's current period fixed and only reconsiders
// its room set, the targeted move for resolving room-capacity or
// room-split penalties without disturbing student/instructor conflicts.
type ExamRoomMove struct {
	rng *rand.Rand
}

func NewExamRoomMove(rng *rand.Rand) *ExamRoomMove {
	return &ExamRoomMove{rng: rng}
}

func (s *ExamRoomMove) Select(m *model.Model, a model.Assignment) Neighbour {
	exam := randomAssignedExam(m, a, s.rng)
	if exam == nil {
		return nil
	}
	current, ok := a.GetValue(exam.ID)
	if !ok {
		return nil
	}
	var sameTime []*model.Placement
	for _, p := range exam.Domain(m) {
		if p.Period.ID == current.Period.ID {
			sameTime = append(sameTime, p)
		}
	}
	if len(sameTime) == 0 {
		return nil
	}
	p := sameTime[s.rng.Intn(len(sameTime))]
	return &placementNeighbour{examID: exam.ID, placement: p}
}

// ExamTimeMove keeps an exam's room set fixed and only reconsiders its
// period, for resolving period-preference or conflict penalties without
// disturbing a satisfactory room choice. When no other period admits the
// current room set, Select returns nil; it does not try other rooms.
type ExamTimeMove struct {
	rng *rand.Rand
}

func NewExamTimeMove(rng *rand.Rand) *ExamTimeMove {
	return &ExamTimeMove{rng: rng}
}

func (s *ExamTimeMove) Select(m *model.Model, a model.Assignment) Neighbour {
	exam := randomAssignedExam(m, a, s.rng)
	if exam == nil {
		return nil
	}
	current, ok := a.GetValue(exam.ID)
	if !ok {
		return nil
	}
	var sameRooms []*model.Placement
	for _, p := range exam.Domain(m) {
		if p.Period.ID != current.Period.ID && sameRoomSet(p.Rooms, current.Rooms) {
			sameRooms = append(sameRooms, p)
		}
	}
	if len(sameRooms) == 0 {
		return nil
	}
	p := sameRooms[s.rng.Intn(len(sameRooms))]
	return &placementNeighbour{examID: exam.ID, placement: p}
}

// ExamSplit reconsiders an exam's room set with the opposite split
// cardinality it currently has: a single-room exam is offered a split
// placement and vice versa, exercising RoomSplitPenalty/
// RoomSplitDistancePenalty trade-offs directly.
type ExamSplit struct {
	rng *rand.Rand
}

func NewExamSplit(rng *rand.Rand) *ExamSplit {
	return &ExamSplit{rng: rng}
}

func (s *ExamSplit) Select(m *model.Model, a model.Assignment) Neighbour {
	exam := randomAssignedExam(m, a, s.rng)
	if exam == nil {
		return nil
	}
	current, ok := a.GetValue(exam.ID)
	if !ok {
		return nil
	}
	wantSplit := len(current.Rooms) == 1
	var candidates []*model.Placement
	for _, p := range exam.Domain(m) {
		if p.Period.ID != current.Period.ID {
			continue
		}
		isSplit := len(p.Rooms) > 1
		if isSplit == wantSplit && !sameRoomSet(p.Rooms, current.Rooms) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	p := candidates[s.rng.Intn(len(candidates))]
	return &placementNeighbour{examID: exam.ID, placement: p}
}

// randomExam and randomAssignedExam sort their candidate id slice before
// sampling: map iteration order is randomized per run, so indexing it
// directly with a seeded *rand.Rand would make the seed not actually
// determine the sequence of picks.
func randomExam(m *model.Model, rng *rand.Rand) *model.Exam {
	if len(m.Exams) == 0 {
		return nil
	}
	ids := make([]int, 0, len(m.Exams))
	for id := range m.Exams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return m.Exams[ids[rng.Intn(len(ids))]]
}

func randomAssignedExam(m *model.Model, a model.Assignment, rng *rand.Rand) *model.Exam {
	placements := a.Placements()
	if len(placements) == 0 {
		return nil
	}
	ids := make([]int, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return m.Exams[ids[rng.Intn(len(ids))]]
}

func sameRoomSet(a, b []*model.Room) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]bool, len(a))
	for _, r := range a {
		set[r.ID] = true
	}
	for _, r := range b {
		if !set[r.ID] {
			return false
		}
	}
	return true
}
