package criteria

import (
	"testing"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.AllowSplit = true
	cfg.MaxRoomSplit = 2
	m := model.NewModel(cfg)

	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 120, 1)
	m.Periods[1] = model.NewPeriod(1, 1, 0, 11*60, 120, 0)
	m.Periods[2] = model.NewPeriod(2, 2, 1, 9*60, 120, 0)

	m.Rooms[0] = model.NewRoom(0, "A", 100, 0)
	m.Rooms[1] = model.NewRoom(1, "B", 150, 0)

	e1 := &model.Exam{ID: 1, StudentCount: 10, StudentIDs: []int{1, 2}}
	e2 := &model.Exam{ID: 2, StudentCount: 10, StudentIDs: []int{2, 3}}
	m.Exams[1] = e1
	m.Exams[2] = e2

	require.NoError(t, m.Finalize())
	return m
}

func TestStudentDirectConflictsCountsSharedAttendeeSamePeriod(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	c := newAttendeeDirectConflicts(m, 1, studentKind)

	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	p2 := model.NewPlacement(m.Exams[2], m.Periods[0], []*model.Room{m.Rooms[1]})
	a.Assign(1, p1)
	a.Assign(2, p2)

	require.Equal(t, float64(1), c.GetValue(a)) // student 2 shared, same period
}

func TestStudentDirectConflictsZeroWhenDifferentPeriods(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	c := newAttendeeDirectConflicts(m, 1, studentKind)

	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	p2 := model.NewPlacement(m.Exams[2], m.Periods[1], []*model.Room{m.Rooms[1]})
	a.Assign(1, p1)
	a.Assign(2, p2)

	require.Equal(t, float64(0), c.GetValue(a))
}

func TestRoomSplitPenaltyCountsSplitPlacement(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	c := newRoomSplitPenalty(1)

	split := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0], m.Rooms[1]})
	a.Assign(1, split)

	require.Equal(t, float64(1), c.GetValue(a))
}

func TestPeriodPenaltySumsPeriodWeight(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	c := newPeriodPenalty(1)

	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	a.Assign(1, p)

	require.Equal(t, float64(1), c.GetValue(a))
}

func TestDistributionPenaltyAppliesOnlyToSoftViolations(t *testing.T) {
	m := buildModel(t)
	m.Distributions[1] = &model.DistributionConstraint{ID: 1, Type: model.SamePeriod, ExamIDs: []int{1, 2}, Penalty: 5}
	m.Exams[1].DistributionIDs = []int{1}
	m.Exams[2].DistributionIDs = []int{1}
	require.NoError(t, m.Finalize())

	a := assignment.NewSingleAssignment(m)
	c := newDistributionPenalty(m, 1)
	m.Criteria = []model.Criterion{c}

	p1 := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	p2 := model.NewPlacement(m.Exams[2], m.Periods[1], []*model.Room{m.Rooms[1]})
	a.Assign(1, p1)
	a.Assign(2, p2)
	require.Equal(t, float64(5), c.GetValue(a))

	a.Unassign(3, 2)
	p2b := model.NewPlacement(m.Exams[2], m.Periods[0], []*model.Room{m.Rooms[1]})
	a.Assign(3, p2b)
	require.Equal(t, float64(0), c.GetValue(a))
}

func TestRegistryBuildReportsUnknownNames(t *testing.T) {
	m := buildModel(t)
	r := NewRegistry(m)
	built, unknown := r.Build(map[string]float64{"PeriodPenalty": 1, "NotARealCriterion": 2})
	require.Len(t, built, 1)
	require.Equal(t, []string{"NotARealCriterion"}, unknown)
}

func TestGenericPenaltyIsAlwaysZero(t *testing.T) {
	m := buildModel(t)
	a := assignment.NewSingleAssignment(m)
	c := newGenericPenalty("ExamRotationPenalty", 3)
	require.Equal(t, float64(0), c.GetValue(a))

	p := model.NewPlacement(m.Exams[1], m.Periods[0], []*model.Room{m.Rooms[0]})
	require.Equal(t, float64(0), c.GetValueDelta(a, p, nil))
}
