package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func smallModel(t *testing.T) *Model {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AllowSplit = true
	cfg.MaxRoomSplit = 2
	m := NewModel(cfg)

	for i, day := range []int{0, 0, 1} {
		m.Periods[i] = NewPeriod(i, i, day, 9*60, 120, 0)
	}
	m.Rooms[0] = NewRoom(0, "A100", 30, 0)
	m.Rooms[1] = NewRoom(1, "A200", 20, 0)

	e1 := &Exam{ID: 1, Name: "Algorithms", StudentCount: 25}
	e1.AllowedPeriods = []PeriodPreference{{PeriodID: 0}, {PeriodID: 1}}
	m.Exams[1] = e1

	e2 := &Exam{ID: 2, Name: "Databases", StudentCount: 10}
	e2.AllowedPeriods = []PeriodPreference{{PeriodID: 0}, {PeriodID: 2}}
	m.Exams[2] = e2

	require.NoError(t, m.Finalize())
	return m
}

func TestFinalizeRejectsUnknownReferences(t *testing.T) {
	m := NewModel(DefaultConfig())
	m.Periods[0] = NewPeriod(0, 0, 0, 0, 60, 0)
	m.Exams[1] = &Exam{ID: 1, StudentCount: 5, AllowedPeriods: []PeriodPreference{{PeriodID: 99}}}

	err := m.Finalize()
	require.Error(t, err)
	var mi *MalformedInput
	require.ErrorAs(t, err, &mi)
}

func TestFinalizeMarksLargeExams(t *testing.T) {
	m := NewModel(Config{LargeExamSize: 20})
	m.Exams[1] = &Exam{ID: 1, StudentCount: 25}
	require.NoError(t, m.Finalize())
	require.True(t, m.Exams[1].Large)
}

func TestExamDomainOnlyReturnsFeasiblePlacements(t *testing.T) {
	m := smallModel(t)
	e2 := m.Exams[2]

	domain := e2.Domain(m)
	require.NotEmpty(t, domain)
	for _, p := range domain {
		require.NoError(t, p.Feasible(m))
		require.GreaterOrEqual(t, p.TotalSeats(), e2.StudentCount)
	}
}

func TestExamDomainSplitsRoomsWhenNoSingleRoomFits(t *testing.T) {
	m := smallModel(t)
	big := &Exam{ID: 3, StudentCount: 45, AllowedPeriods: []PeriodPreference{{PeriodID: 0}}}
	m.Exams[3] = big
	require.NoError(t, m.Finalize())

	domain := big.Domain(m)
	require.NotEmpty(t, domain)
	found := false
	for _, p := range domain {
		if len(p.Rooms) == 2 {
			found = true
		}
	}
	require.True(t, found, "expected at least one split placement using both rooms")
}

func TestPlacementFeasibleRejectsOverSplitAndUnavailablePeriod(t *testing.T) {
	m := smallModel(t)
	e1 := m.Exams[1]
	r0, r1 := m.Rooms[0], m.Rooms[1]

	over := NewPlacement(e1, m.Periods[0], []*Room{r0, r1})
	m.Config.MaxRoomSplit = 1
	require.Error(t, over.Feasible(m))

	m.Periods[0].SetExamUnavailable(e1.ID)
	m.Config.MaxRoomSplit = 2
	blocked := NewPlacement(e1, m.Periods[0], []*Room{r0})
	require.Error(t, blocked.Feasible(m))
}

func TestDistributionConstraintSamePeriod(t *testing.T) {
	m := smallModel(t)
	d := &DistributionConstraint{ID: 1, Type: SamePeriod, ExamIDs: []int{1, 2}}

	p1 := NewPlacement(m.Exams[1], m.Periods[0], []*Room{m.Rooms[0]})
	p2 := NewPlacement(m.Exams[2], m.Periods[2], []*Room{m.Rooms[1]})
	placements := map[int]*Placement{1: p1, 2: p2}
	require.True(t, d.Violated(placements))

	p2.Period = m.Periods[0]
	require.False(t, d.Violated(placements))
}

func TestDistributionConstraintPrecedence(t *testing.T) {
	m := smallModel(t)
	d := &DistributionConstraint{ID: 2, Type: Precedence, ExamIDs: []int{1, 2}}

	placements := map[int]*Placement{
		1: NewPlacement(m.Exams[1], m.Periods[0], nil),
		2: NewPlacement(m.Exams[2], m.Periods[2], nil),
	}
	require.False(t, d.Violated(placements))

	placements[2].Period = m.Periods[0]
	require.True(t, d.Violated(placements))
}

func TestPeriodSamePeriodDayAndIndexDistance(t *testing.T) {
	a := NewPeriod(0, 0, 0, 9*60, 60, 0)
	b := NewPeriod(1, 1, 0, 11*60, 60, 0)
	c := NewPeriod(2, 2, 1, 9*60, 60, 0)

	require.True(t, SamePeriodDay(a, b))
	require.False(t, SamePeriodDay(a, c))
	require.Equal(t, 1, IndexDistance(a, b))
	require.Equal(t, 2, IndexDistance(a, c))
}
