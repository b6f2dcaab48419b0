package neighbour

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/criteria"
	"timetabling-UDP/internal/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.AllowSplit = true
	cfg.MaxRoomSplit = 2
	m := model.NewModel(cfg)

	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 120, 0)
	m.Periods[1] = model.NewPeriod(1, 1, 0, 11*60, 120, 0)
	m.Rooms[0] = model.NewRoom(0, "A", 30, 0)
	m.Rooms[1] = model.NewRoom(1, "B", 20, 0)

	e1 := &model.Exam{ID: 1, StudentCount: 10, AllowedPeriods: []model.PeriodPreference{{PeriodID: 0}, {PeriodID: 1}}}
	m.Exams[1] = e1
	require.NoError(t, m.Finalize())

	reg := criteria.NewRegistry(m)
	built, unknown := reg.Build(map[string]float64{"PeriodPenalty": 1})
	require.Empty(t, unknown)
	m.Criteria = built
	return m
}

func TestExamRandomMoveProducesFeasiblePlacement(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	sel := NewExamRandomMove(rand.New(rand.NewSource(1)))

	n := sel.Select(m, a)
	require.NotNil(t, n)
	require.NoError(t, n.Placement().Feasible(m))
}

func TestExamTimeMoveKeepsRoomsFixed(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p)

	sel := NewExamTimeMove(rand.New(rand.NewSource(1)))
	n := sel.Select(m, a)
	require.NotNil(t, n)
	require.Equal(t, m.Periods[1].ID, n.Placement().Period.ID)
	require.True(t, sameRoomSet(n.Placement().Rooms, p.Rooms))
}

func TestExamRoomMoveKeepsPeriodFixed(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p)

	sel := NewExamRoomMove(rand.New(rand.NewSource(2)))
	n := sel.Select(m, a)
	if n == nil {
		t.Skip("no alternative room exists for this exam/period in the fixture")
	}
	require.Equal(t, p.Period.ID, n.Placement().Period.ID)
}

func TestNeighbourAssignCommitsPlacement(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	sel := NewExamRandomMove(rand.New(rand.NewSource(3)))
	n := sel.Select(m, a)
	require.NotNil(t, n)

	n.Assign(1, a)
	got, ok := a.GetValue(1)
	require.True(t, ok)
	require.Equal(t, n.Placement(), got)
}

func TestNeighbourValueMatchesCriterionDelta(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	sel := NewExamRandomMove(rand.New(rand.NewSource(4)))
	n := sel.Select(m, a)
	require.NotNil(t, n)

	predicted := n.Value(m, a)
	before := m.TotalValue(a)
	n.Assign(1, a)
	after := m.TotalValue(a)

	require.InDelta(t, after-before, predicted, 1e-9)
}
