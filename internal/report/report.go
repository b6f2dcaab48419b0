// Package report implements the CSV report set and console summary table
// gated behind Config.Reports: a representative subset of the full report
// list (per-exam schedule, period usage, room usage, direct conflicts),
// each a Report generating a Table and saving it with encoding/csv.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"

	"timetabling-UDP/internal/model"
)

// Table is a report's rendered output: a header row plus data rows, the
// shape both the CSV writer and the console summary consume.
type Table struct {
	Header []string
	Rows   [][]string
}

// Report generates a Table from a solved model/assignment pair and saves
// it to disk.
type Report interface {
	Name() string
	Generate(m *model.Model, a model.Assignment) (Table, error)
	Save(t Table, path string) error
}

// base implements Save identically for every CSV-backed report, so each
// concrete report only needs to implement Generate.
type base struct {
	name string
}

func (b base) Name() string { return b.name }

func (b base) Save(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating report file %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return errors.Wrapf(err, "writing header for report %s", b.name)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.Wrapf(err, "writing rows for report %s", b.name)
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "flushing report %s", b.name)
}

// ScheduleReport lists every assigned exam with its period and rooms, and
// every unassigned exam with blank period/room columns.
type ScheduleReport struct{ base }

func NewScheduleReport() *ScheduleReport {
	return &ScheduleReport{base{name: "schedule"}}
}

func (r *ScheduleReport) Generate(m *model.Model, a model.Assignment) (Table, error) {
	t := Table{Header: []string{"exam_id", "exam_name", "period_id", "rooms"}}
	for _, id := range sortedExamIDs(m) {
		e := m.Exams[id]
		p, ok := a.GetValue(id)
		if !ok {
			t.Rows = append(t.Rows, []string{fmt.Sprint(id), e.Name, "", ""})
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(id), e.Name, fmt.Sprint(p.Period.ID), roomIDsCSV(p),
		})
	}
	return t, nil
}

// PeriodUsageReport counts assigned exams and seats used per period.
type PeriodUsageReport struct{ base }

func NewPeriodUsageReport() *PeriodUsageReport {
	return &PeriodUsageReport{base{name: "period_usage"}}
}

func (r *PeriodUsageReport) Generate(m *model.Model, a model.Assignment) (Table, error) {
	t := Table{Header: []string{"period_id", "exams", "seats_used"}}
	exams := make(map[int]int)
	seats := make(map[int]int)
	for _, p := range a.Placements() {
		exams[p.Period.ID]++
		seats[p.Period.ID] += p.TotalSeats()
	}
	for _, id := range sortedPeriodIDs(m) {
		t.Rows = append(t.Rows, []string{fmt.Sprint(id), fmt.Sprint(exams[id]), fmt.Sprint(seats[id])})
	}
	return t, nil
}

// RoomUsageReport counts, per room, how many periods it is occupied in
// and across how many split placements.
type RoomUsageReport struct{ base }

func NewRoomUsageReport() *RoomUsageReport {
	return &RoomUsageReport{base{name: "room_usage"}}
}

func (r *RoomUsageReport) Generate(m *model.Model, a model.Assignment) (Table, error) {
	t := Table{Header: []string{"room_id", "room_code", "periods_used", "split_uses"}}
	periodsUsed := make(map[int]int)
	splitUses := make(map[int]int)
	for _, p := range a.Placements() {
		for _, rm := range p.Rooms {
			periodsUsed[rm.ID]++
			if len(p.Rooms) > 1 {
				splitUses[rm.ID]++
			}
		}
	}
	for _, id := range sortedRoomIDs(m) {
		rm := m.Rooms[id]
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(id), rm.Code, fmt.Sprint(periodsUsed[id]), fmt.Sprint(splitUses[id]),
		})
	}
	return t, nil
}

// DirectConflictsReport lists every pair of exams sharing an attendee
// that landed in the same period, reusing the same shared-attendee-count
// logic the StudentDirectConflicts/InstructorDirectConflicts criteria
// score.
type DirectConflictsReport struct{ base }

func NewDirectConflictsReport() *DirectConflictsReport {
	return &DirectConflictsReport{base{name: "direct_conflicts"}}
}

func (r *DirectConflictsReport) Generate(m *model.Model, a model.Assignment) (Table, error) {
	t := Table{Header: []string{"exam_a", "exam_b", "period_id", "shared_students", "shared_instructors"}}
	placements := a.Placements()
	ids := make([]int, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for i, idA := range ids {
		pA := placements[idA]
		for _, idB := range ids[i+1:] {
			pB := placements[idB]
			if pA.Period.ID != pB.Period.ID {
				continue
			}
			students := sharedCount(pA.Exam.StudentIDs, pB.Exam.StudentIDs)
			instructors := sharedCount(pA.Exam.InstructorIDs, pB.Exam.InstructorIDs)
			if students == 0 && instructors == 0 {
				continue
			}
			t.Rows = append(t.Rows, []string{
				fmt.Sprint(idA), fmt.Sprint(idB), fmt.Sprint(pA.Period.ID),
				fmt.Sprint(students), fmt.Sprint(instructors),
			})
		}
	}
	return t, nil
}

func sharedCount(a, b []int) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[int]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	count := 0
	for _, id := range b {
		if set[id] {
			count++
		}
	}
	return count
}

func sortedExamIDs(m *model.Model) []int {
	ids := make([]int, 0, len(m.Exams))
	for id := range m.Exams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedPeriodIDs(m *model.Model) []int {
	ids := make([]int, 0, len(m.Periods))
	for id := range m.Periods {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedRoomIDs(m *model.Model) []int {
	ids := make([]int, 0, len(m.Rooms))
	for id := range m.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func roomIDsCSV(p *model.Placement) string {
	ids := p.RoomIDs()
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprint(id)
	}
	return out
}

// Default returns the representative report subset generated and saved
// whenever Config.Reports is set.
func Default() []Report {
	return []Report{
		NewScheduleReport(),
		NewPeriodUsageReport(),
		NewRoomUsageReport(),
		NewDirectConflictsReport(),
	}
}
