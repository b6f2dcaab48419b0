// Package exporter writes a solved timetable out as JSON, for consumers
// that want the full assignment rather than the one-report-per-concern CSV
// files internal/report produces: a summary block, per-period schedule,
// and flat exam list in one MarshalIndent call.
package exporter

import (
	"encoding/json"
	"os"
	"sort"

	"timetabling-UDP/internal/model"
)

// ScheduleExport is the top-level JSON document.
type ScheduleExport struct {
	Summary ScheduleSummary `json:"summary"`
	Periods []PeriodExport  `json:"periods"`
	Exams   []ExamExport    `json:"exams"`
}

// ScheduleSummary mirrors the counts a caller would otherwise have to
// recompute from the flat exam list.
type ScheduleSummary struct {
	TotalExams      int `json:"total_exams"`
	AssignedExams   int `json:"assigned_exams"`
	UnassignedExams int `json:"unassigned_exams"`
	TotalPeriods    int `json:"total_periods"`
	TotalRooms      int `json:"total_rooms"`
}

// PeriodExport lists every exam placed in one period.
type PeriodExport struct {
	PeriodID int          `json:"period_id"`
	Day      int          `json:"day"`
	StartMin int          `json:"start_minute"`
	Exams    []ExamExport `json:"exams"`
}

func newPeriodExport(p *model.Period) PeriodExport {
	return PeriodExport{PeriodID: p.ID, Day: p.Day, StartMin: p.Time}
}

// ExamExport is one exam's placement, or a blank placement if unassigned.
type ExamExport struct {
	ExamID       int    `json:"exam_id"`
	Name         string `json:"name,omitempty"`
	StudentCount int    `json:"student_count"`
	PeriodID     *int   `json:"period_id,omitempty"`
	RoomIDs      []int  `json:"room_ids,omitempty"`
}

// Export writes the full solved timetable in m/a to filename as JSON.
func Export(m *model.Model, a model.Assignment, filename string) error {
	doc := ScheduleExport{
		Summary: summarize(m, a),
		Periods: buildPeriods(m, a),
		Exams:   buildExamList(m, a),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func summarize(m *model.Model, a model.Assignment) ScheduleSummary {
	return ScheduleSummary{
		TotalExams:      len(m.Exams),
		AssignedExams:   a.NrAssigned(),
		UnassignedExams: a.NrUnassigned(),
		TotalPeriods:    len(m.Periods),
		TotalRooms:      len(m.Rooms),
	}
}

func buildPeriods(m *model.Model, a model.Assignment) []PeriodExport {
	periodIDs := make([]int, 0, len(m.Periods))
	for id := range m.Periods {
		periodIDs = append(periodIDs, id)
	}
	sort.Ints(periodIDs)

	out := make([]PeriodExport, 0, len(periodIDs))
	for _, pid := range periodIDs {
		period := m.Periods[pid]
		pe := newPeriodExport(period)
		for _, exam := range m.Exams {
			p, ok := a.GetValue(exam.ID)
			if !ok || p.Period.ID != pid {
				continue
			}
			pe.Exams = append(pe.Exams, examToExport(exam, p))
		}
		sort.Slice(pe.Exams, func(i, j int) bool { return pe.Exams[i].ExamID < pe.Exams[j].ExamID })
		out = append(out, pe)
	}
	return out
}

func buildExamList(m *model.Model, a model.Assignment) []ExamExport {
	examIDs := make([]int, 0, len(m.Exams))
	for id := range m.Exams {
		examIDs = append(examIDs, id)
	}
	sort.Ints(examIDs)

	out := make([]ExamExport, 0, len(examIDs))
	for _, id := range examIDs {
		exam := m.Exams[id]
		p, ok := a.GetValue(id)
		if !ok {
			out = append(out, ExamExport{ExamID: id, Name: exam.Name, StudentCount: exam.StudentCount})
			continue
		}
		out = append(out, examToExport(exam, p))
	}
	return out
}

func examToExport(exam *model.Exam, p *model.Placement) ExamExport {
	periodID := p.Period.ID
	roomIDs := make([]int, len(p.Rooms))
	for i, r := range p.Rooms {
		roomIDs[i] = r.ID
	}
	return ExamExport{
		ExamID:       exam.ID,
		Name:         exam.Name,
		StudentCount: exam.StudentCount,
		PeriodID:     &periodID,
		RoomIDs:      roomIDs,
	}
}
