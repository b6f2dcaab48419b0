package construction

import (
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel(model.DefaultConfig())
	for i := 0; i < 3; i++ {
		m.Periods[i] = model.NewPeriod(i, i, 0, (9+i)*60, 60, 0)
	}
	m.Rooms[0] = model.NewRoom(0, "R1", 30, 0)
	m.Rooms[1] = model.NewRoom(1, "R2", 10, 0)

	allPeriods := []model.PeriodPreference{{PeriodID: 0}, {PeriodID: 1}, {PeriodID: 2}}
	e1 := &model.Exam{ID: 1, StudentCount: 20, StudentIDs: []int{1, 2}, AllowedPeriods: allPeriods}
	e2 := &model.Exam{ID: 2, StudentCount: 5, StudentIDs: []int{2, 3}, AllowedPeriods: allPeriods}
	e3 := &model.Exam{ID: 3, StudentCount: 5, StudentIDs: []int{4}, AllowedPeriods: allPeriods}
	m.Exams[1], m.Exams[2], m.Exams[3] = e1, e2, e3

	require.NoError(t, m.Finalize())
	return m
}

func TestColoringConstructionAvoidsConflictWhenPossible(t *testing.T) {
	m := buildModel(t)
	cc := NewColoringConstruction(m)
	colors := cc.Run(m)

	require.Len(t, colors, 3)
	// exam 1 and 2 share student 2: with 3 periods available they should
	// not need to collide.
	require.NotEqual(t, colors[1], colors[2])
}

func TestColoringConstructionAssignsEveryExam(t *testing.T) {
	m := buildModel(t)
	cc := NewColoringConstruction(m)
	colors := cc.Run(m)
	for id := range m.Exams {
		_, ok := colors[id]
		require.True(t, ok, "exam %d left uncoloured", id)
	}
}

func TestExamConstructionAssignsRoomsAndReportsUnplaceable(t *testing.T) {
	m := buildModel(t)
	cc := NewColoringConstruction(m)
	colors := cc.Run(m)

	a := assignment.NewSingleAssignment(m)
	ec := NewExamConstruction()
	dud := ec.Run(m, a, 1, colors)

	require.Empty(t, dud, "fixture should be fully placeable with 2 rooms and 3 periods")
	for id := range m.Exams {
		p, ok := a.GetValue(id)
		require.True(t, ok)
		require.NoError(t, p.Feasible(m))
	}
}

func TestExamConstructionLeavesDudWhenNoRoomFits(t *testing.T) {
	m := model.NewModel(model.DefaultConfig())
	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 60, 0)
	m.Rooms[0] = model.NewRoom(0, "Small", 5, 0)
	m.Exams[1] = &model.Exam{ID: 1, StudentCount: 50, AllowedPeriods: []model.PeriodPreference{{PeriodID: 0}}}
	require.NoError(t, m.Finalize())

	a := assignment.NewSingleAssignment(m)
	ec := NewExamConstruction()
	dud := ec.Run(m, a, 1, map[int]int{1: 0})

	require.Equal(t, []int{1}, dud)
	_, ok := a.GetValue(1)
	require.False(t, ok)
}
