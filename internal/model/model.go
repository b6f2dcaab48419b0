package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Config holds the subset of solver configuration that the model itself
// needs to decide feasibility and enumerate domains. The viper-backed
// application configuration (internal/config) does not carry these
// fields; cmd/solver sets them directly when it builds a Model.
type Config struct {
	MaxRoomSplit  int // hard cap on rooms per placement, 1 disables splitting
	AllowSplit    bool
	LargeExamSize int // StudentCount at or above this marks Exam.Large
}

// DefaultConfig returns the values the construction phase assumes when no
// override is given.
func DefaultConfig() Config {
	return Config{MaxRoomSplit: 1, AllowSplit: false, LargeExamSize: 200}
}

// Model owns every entity map (id -> entity) for one problem instance. It is
// built once by Load and is read-only for the remainder of a run; all
// mutable state lives in an Assignment, never here.
type Model struct {
	Config Config

	Exams         map[int]*Exam
	Periods       map[int]*Period
	Rooms         map[int]*Room
	Students      map[int]*Student
	Instructors   map[int]*Instructor
	Distributions map[int]*DistributionConstraint

	// Criteria is the ordered, weighted scoring set this model was loaded
	// with. Callers assign the result of internal/criteria's Registry.Build; the
	// field lives here (typed against the model.Criterion interface) so
	// TotalValue needs no import of the criteria package.
	Criteria []Criterion

	periodIndex []*Period // Periods sorted by Index, cached for distance/adjacency queries
}

// NewModel returns an empty Model ready for incremental population by a
// loader (internal/ioadapter) or by tests.
func NewModel(cfg Config) *Model {
	return &Model{
		Config:        cfg,
		Exams:         make(map[int]*Exam),
		Periods:       make(map[int]*Period),
		Rooms:         make(map[int]*Room),
		Students:      make(map[int]*Student),
		Instructors:   make(map[int]*Instructor),
		Distributions: make(map[int]*DistributionConstraint),
	}
}

// MalformedInput marks a Model construction failure: a reference to an
// entity id that does not exist, a negative capacity, and similar
// structural errors the loader cannot recover from.
type MalformedInput struct {
	msg string
}

func (e *MalformedInput) Error() string { return e.msg }

func malformed(format string, args ...interface{}) error {
	return errors.WithStack(&MalformedInput{msg: errors.Errorf(format, args...).Error()})
}

// Finalize cross-checks referential integrity (every id an Exam/Student/
// Instructor/DistributionConstraint points at must resolve) and builds the
// cached period index used by PeriodDistance. Call once after every entity
// has been added.
func (m *Model) Finalize() error {
	for _, e := range m.Exams {
		for _, pp := range e.AllowedPeriods {
			if _, ok := m.Periods[pp.PeriodID]; !ok {
				return malformed("exam %d: unknown period %d", e.ID, pp.PeriodID)
			}
		}
		for _, rp := range e.AllowedRooms {
			if _, ok := m.Rooms[rp.RoomID]; !ok {
				return malformed("exam %d: unknown room %d", e.ID, rp.RoomID)
			}
		}
		for _, id := range e.DistributionIDs {
			if _, ok := m.Distributions[id]; !ok {
				return malformed("exam %d: unknown distribution %d", e.ID, id)
			}
		}
		if e.StudentCount >= m.Config.LargeExamSize {
			e.Large = true
		}
	}
	for _, d := range m.Distributions {
		for _, id := range d.ExamIDs {
			if _, ok := m.Exams[id]; !ok {
				return malformed("distribution %d: unknown exam %d", d.ID, id)
			}
		}
	}
	for _, s := range m.Students {
		for _, id := range s.ExamIDs {
			if _, ok := m.Exams[id]; !ok {
				return malformed("student %d: unknown exam %d", s.ID, id)
			}
		}
	}
	for _, t := range m.Instructors {
		for _, id := range t.ExamIDs {
			if _, ok := m.Exams[id]; !ok {
				return malformed("instructor %d: unknown exam %d", t.ID, id)
			}
		}
	}

	m.periodIndex = make([]*Period, 0, len(m.Periods))
	for _, p := range m.Periods {
		m.periodIndex = append(m.periodIndex, p)
	}
	sort.Slice(m.periodIndex, func(i, j int) bool { return m.periodIndex[i].Index < m.periodIndex[j].Index })
	return nil
}

// PeriodDistance returns the ordinal distance between two periods by id.
func (m *Model) PeriodDistance(periodID1, periodID2 int) int {
	p1, p2 := m.Periods[periodID1], m.Periods[periodID2]
	if p1 == nil || p2 == nil {
		return -1
	}
	return IndexDistance(p1, p2)
}

// RoomDistance returns the physical distance between two rooms by id.
func (m *Model) RoomDistance(roomID1, roomID2 int) float64 {
	r1 := m.Rooms[roomID1]
	if r1 == nil {
		return 0
	}
	return r1.DistanceTo(roomID2)
}

// TotalValue sums every registered criterion's weighted contribution under
// a, the authoritative (if expensive) full rescoring used by tests and by
// the final-phase sanity check.
func (m *Model) TotalValue(a Assignment) float64 {
	total := 0.0
	for _, c := range m.Criteria {
		total += c.GetWeight() * c.GetValue(a)
	}
	return total
}

// feasibleRoomSets enumerates candidate room combinations for an exam in a
// given period: first every single room big enough and allowed, then, if
// splitting is enabled (even when a single room already suffices), for
// each room a combination of it and the rooms after it in ascending
// capacity order, added one at a time until the exam is seated (always at
// least two rooms, at most Config.MaxRoomSplit). A greedy-then-split strategy
// rather than an exhaustive subset search, which is exponential and
// unnecessary for realistic room counts.
func (m *Model) feasibleRoomSets(e *Exam, period *Period) [][]*Room {
	var singles []*Room
	allowed := roomAllowSet(e)
	for _, r := range m.Rooms {
		if !r.Available(period.ID) || !period.RoomAvailable(r.ID) {
			continue
		}
		if allowed != nil && !allowed[r.ID] {
			continue
		}
		singles = append(singles, r)
	}
	sort.Slice(singles, func(i, j int) bool { return singles[i].CapacityFor(e.AltLayout) < singles[j].CapacityFor(e.AltLayout) })

	var out [][]*Room
	for _, r := range singles {
		if r.CapacityFor(e.AltLayout) >= e.StudentCount {
			out = append(out, []*Room{r})
		}
	}

	if !m.Config.AllowSplit || m.Config.MaxRoomSplit < 2 {
		return out
	}
	for i := 0; i < len(singles); i++ {
		seats := singles[i].CapacityFor(e.AltLayout)
		combo := []*Room{singles[i]}
		for j := i + 1; j < len(singles) && len(combo) < m.Config.MaxRoomSplit; j++ {
			seats += singles[j].CapacityFor(e.AltLayout)
			combo = append(combo, singles[j])
			if seats >= e.StudentCount {
				dup := make([]*Room, len(combo))
				copy(dup, combo)
				out = append(out, dup)
				break
			}
		}
	}
	return out
}

func roomAllowSet(e *Exam) map[int]bool {
	if len(e.AllowedRooms) == 0 {
		return nil
	}
	set := make(map[int]bool, len(e.AllowedRooms))
	for _, rp := range e.AllowedRooms {
		if rp.Hard && rp.Weight != 0 {
			continue
		}
		set[rp.RoomID] = true
	}
	return set
}
