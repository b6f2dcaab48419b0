package repair

import (
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/criteria"
	"timetabling-UDP/internal/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel(model.DefaultConfig())
	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 60, 0)
	m.Periods[1] = model.NewPeriod(1, 1, 0, 11*60, 60, 0)
	m.Rooms[0] = model.NewRoom(0, "R1", 30, 0)

	ap := []model.PeriodPreference{{PeriodID: 0}, {PeriodID: 1}}
	m.Exams[1] = &model.Exam{ID: 1, StudentCount: 10, AllowedPeriods: ap}
	m.Exams[2] = &model.Exam{ID: 2, StudentCount: 10, AllowedPeriods: ap}
	require.NoError(t, m.Finalize())

	reg := criteria.NewRegistry(m)
	built, unknown := reg.Build(map[string]float64{"PeriodPenalty": 1})
	require.Empty(t, unknown)
	m.Criteria = built
	return m
}

func TestTabuListRejectsRecentMoveThenForgetsIt(t *testing.T) {
	m := buildModel(t)
	tl := NewTabuList(1)
	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	p2 := model.NewPlacement(m.Exams[2], m.Periods[1], []*model.Room{m.Rooms[0]})

	require.False(t, tl.Contains(p1))
	tl.Add(p1)
	require.True(t, tl.Contains(p1))

	tl.Add(p2) // capacity 1: evicts p1
	require.False(t, tl.Contains(p1))
	require.True(t, tl.Contains(p2))
}

func TestCBSTabuSelectorPlacesAllWhenRoomEnough(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	sel := NewCBSTabuSelector(10, 1.0)

	remaining := sel.Run(m, a, 1, []int{1, 2}, 50)
	require.Empty(t, remaining)
	require.Equal(t, 2, a.NrAssigned())
}

func TestCBSRecordsEvictionsWhenExamsCollide(t *testing.T) {
	m := model.NewModel(model.DefaultConfig())
	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 60, 0)
	m.Rooms[0] = model.NewRoom(0, "Only", 30, 0)
	ap := []model.PeriodPreference{{PeriodID: 0}}
	m.Exams[1] = &model.Exam{ID: 1, StudentCount: 10, AllowedPeriods: ap}
	m.Exams[2] = &model.Exam{ID: 2, StudentCount: 10, AllowedPeriods: ap}
	require.NoError(t, m.Finalize())
	reg := criteria.NewRegistry(m)
	built, _ := reg.Build(map[string]float64{"PeriodPenalty": 1})
	m.Criteria = built

	a := assignment.NewSingleAssignment(m)
	sel := NewCBSTabuSelector(10, 1.0)
	remaining := sel.Run(m, a, 1, []int{1, 2}, 50)

	// only one room exists, so one of the two exams must stay unassigned
	require.Len(t, remaining, 1)
	require.Equal(t, 1, a.NrAssigned())
	require.Greater(t, sel.cbs.Score(1)+sel.cbs.Score(2), 0)
}
