package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/model"
)

func smallModel(t *testing.T) (*model.Model, model.Assignment) {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.AllowSplit = true
	m := model.NewModel(cfg)

	m.Periods[0] = model.NewPeriod(0, 0, 0, 9*60, 120, 0)
	m.Periods[1] = model.NewPeriod(1, 1, 0, 11*60, 120, 0)
	m.Rooms[0] = model.NewRoom(0, "A100", 30, 0)
	m.Rooms[1] = model.NewRoom(1, "A200", 20, 0)

	e1 := &model.Exam{ID: 1, Name: "Algorithms", StudentCount: 25, StudentIDs: []int{1, 2}}
	e1.AllowedPeriods = []model.PeriodPreference{{PeriodID: 0}, {PeriodID: 1}}
	m.Exams[1] = e1

	e2 := &model.Exam{ID: 2, Name: "Databases", StudentCount: 10, StudentIDs: []int{2, 3}}
	e2.AllowedPeriods = []model.PeriodPreference{{PeriodID: 0}, {PeriodID: 1}}
	m.Exams[2] = e2

	e3 := &model.Exam{ID: 3, Name: "Unscheduled", StudentCount: 5}
	e3.AllowedPeriods = []model.PeriodPreference{{PeriodID: 0}}
	m.Exams[3] = e3

	require.NoError(t, m.Finalize())

	a := assignment.NewSingleAssignment(m)
	a.Assign(1, model.NewPlacement(e1, m.Periods[0], []*model.Room{m.Rooms[0]}))
	a.Assign(2, model.NewPlacement(e2, m.Periods[0], []*model.Room{m.Rooms[1]}))
	return m, a
}

func TestScheduleReportListsAssignedAndUnassignedExams(t *testing.T) {
	m, a := smallModel(t)
	table, err := NewScheduleReport().Generate(m, a)
	require.NoError(t, err)
	require.Equal(t, []string{"exam_id", "exam_name", "period_id", "rooms"}, table.Header)
	require.Len(t, table.Rows, 3)
	require.Equal(t, []string{"3", "Unscheduled", "", ""}, table.Rows[2])
}

func TestPeriodUsageReportCountsExamsAndSeats(t *testing.T) {
	m, a := smallModel(t)
	table, err := NewPeriodUsageReport().Generate(m, a)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "2", "50"}, table.Rows[0])
	require.Equal(t, []string{"1", "0", "0"}, table.Rows[1])
}

func TestRoomUsageReportCountsPeriodsPerRoom(t *testing.T) {
	m, a := smallModel(t)
	table, err := NewRoomUsageReport().Generate(m, a)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "A100", "1", "0"}, table.Rows[0])
	require.Equal(t, []string{"1", "A200", "1", "0"}, table.Rows[1])
}

func TestDirectConflictsReportFindsSharedStudentInSamePeriod(t *testing.T) {
	m, a := smallModel(t)
	table, err := NewDirectConflictsReport().Generate(m, a)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, []string{"1", "2", "0", "1", "0"}, table.Rows[0])
}

func TestSaveWritesCSVWithHeaderAndRows(t *testing.T) {
	m, a := smallModel(t)
	table, err := NewScheduleReport().Generate(m, a)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, NewScheduleReport().Save(table, path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "exam_id,exam_name,period_id,rooms")
	require.Contains(t, string(contents), "Algorithms")
}
