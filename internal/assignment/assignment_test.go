package assignment

import (
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel(model.DefaultConfig())
	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 120, 0)
	m.Periods[1] = model.NewPeriod(1, 1, 0, 11*60, 120, 0)
	m.Rooms[0] = model.NewRoom(0, "R100", 30, 0)
	m.Rooms[1] = model.NewRoom(1, "R200", 30, 0)

	m.Exams[1] = &model.Exam{ID: 1, StudentCount: 10, StudentIDs: []int{100}, InstructorIDs: []int{900}}
	m.Exams[2] = &model.Exam{ID: 2, StudentCount: 10, StudentIDs: []int{100}}
	require.NoError(t, m.Finalize())
	return m
}

func TestAssignAndUnassignRoundTrip(t *testing.T) {
	m := testModel(t)
	a := NewSingleAssignment(m)

	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p)

	got, ok := a.GetValue(1)
	require.True(t, ok)
	require.Equal(t, p, got)
	require.Equal(t, 1, a.NrAssigned())
	require.True(t, a.StudentBusy(0, 100))
	require.True(t, a.InstructorBusy(0, 900))

	a.Unassign(2, 1)
	_, ok = a.GetValue(1)
	require.False(t, ok)
	require.False(t, a.StudentBusy(0, 100))
}

func TestAssignEvictsRoomConflict(t *testing.T) {
	m := testModel(t)
	a := NewSingleAssignment(m)

	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p1)

	p2 := model.NewPlacement(m.Exams[2], m.Periods[0], []*model.Room{m.Rooms[0]})
	conflicts := a.ConflictsFor(p2)
	require.Equal(t, []int{1}, conflicts)

	a.Assign(2, p2)
	_, stillThere := a.GetValue(1)
	require.False(t, stillThere, "conflicting exam should have been evicted by Assign")
	got, ok := a.GetValue(2)
	require.True(t, ok)
	require.Equal(t, p2, got)
}

func TestReassigningSameExamReplacesPlacement(t *testing.T) {
	m := testModel(t)
	a := NewSingleAssignment(m)

	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p1)
	p2 := model.NewPlacement(m.Exams[1], m.Periods[1], []*model.Room{m.Rooms[1]})
	a.Assign(2, p2)

	require.Equal(t, 1, a.NrAssigned())
	require.False(t, a.StudentBusy(0, 100))
	require.True(t, a.StudentBusy(1, 100))
}

func TestContextIsLazyAndCachedPerOwner(t *testing.T) {
	m := testModel(t)
	a := NewSingleAssignment(m)

	calls := 0
	factory := func(model.Assignment) model.Context {
		calls++
		return &struct{ n int }{n: 1}
	}

	c1 := a.Context(model.ContextOwner(1), factory)
	c2 := a.Context(model.ContextOwner(1), factory)
	require.Same(t, c1, c2)
	require.Equal(t, 1, calls)

	a.Context(model.ContextOwner(2), factory)
	require.Equal(t, 2, calls)
}

func TestParallelAssignmentSnapshotAndCopyFrom(t *testing.T) {
	m := testModel(t)
	shared := NewParallelAssignment(m)
	worker := shared.Snapshot()

	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	worker.Assign(1, p)
	require.Equal(t, 0, shared.NrAssigned())

	shared.CopyFrom(worker)
	require.Equal(t, 1, shared.NrAssigned())
	got, ok := shared.GetValue(1)
	require.True(t, ok)
	require.Equal(t, p.Exam.ID, got.Exam.ID)
}
