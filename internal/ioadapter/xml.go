// Package ioadapter implements the problem loader and solution writer: an
// XML input schema describing exams, periods, rooms, students, instructors
// and distribution constraints, and an XML output mirroring it with
// <assignment> entries. Kept on the standard library's encoding/xml rather
// than a third-party XML library since no pack dependency specializes in
// XML beyond what encoding/xml already covers; DESIGN.md records this as
// the one deliberate standard-library choice in the external-interfaces
// layer.
package ioadapter

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/xerrors"
)

// problemDocument is the root element of the input schema: children for
// exams, periods, rooms, students, instructors, and distribution
// constraints.
type problemDocument struct {
	XMLName  xml.Name       `xml:"problem"`
	Periods  []xmlPeriod    `xml:"periods>period"`
	Rooms    []xmlRoom      `xml:"rooms>room"`
	Exams    []xmlExam      `xml:"exams>exam"`
	Students []xmlAttendee  `xml:"students>student"`
	Teachers []xmlAttendee  `xml:"instructors>instructor"`
	Dists    []xmlDistribution `xml:"distributions>distribution"`
}

type xmlPeriod struct {
	ID       int `xml:"id,attr"`
	Index    int `xml:"index,attr"`
	Day      int `xml:"day,attr"`
	Time     int `xml:"time,attr"`
	Duration int `xml:"duration,attr"`
	Penalty  int `xml:"penalty,attr"`
}

type xmlRoom struct {
	ID          int    `xml:"id,attr"`
	Code        string `xml:"code,attr"`
	Capacity    int    `xml:"capacity,attr"`
	AltCapacity int    `xml:"altCapacity,attr"`
}

type xmlPeriodRef struct {
	ID     int  `xml:"id,attr"`
	Weight int  `xml:"weight,attr"`
	Hard   bool `xml:"hard,attr"`
}

type xmlRoomRef struct {
	ID     int  `xml:"id,attr"`
	Weight int  `xml:"weight,attr"`
	Hard   bool `xml:"hard,attr"`
}

type xmlExam struct {
	ID           int            `xml:"id,attr"`
	Name         string         `xml:"name,attr"`
	StudentCount int            `xml:"students,attr"`
	Periods      []xmlPeriodRef `xml:"period"`
	Rooms        []xmlRoomRef   `xml:"room"`
	StudentIDs   []int          `xml:"student>id"`
	InstructorIDs []int         `xml:"instructor>id"`
	DistIDs      []int          `xml:"distribution>id"`
}

type xmlAttendee struct {
	ID          int   `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Unavailable []int `xml:"unavailable>period"`
}

type xmlDistribution struct {
	ID      int    `xml:"id,attr"`
	Type    string `xml:"type,attr"`
	Hard    bool   `xml:"hard,attr"`
	Penalty float64 `xml:"penalty,attr"`
	ExamIDs []int  `xml:"exam>id"`
}

// ProblemLoader reads an examination-timetabling instance into a Model.
type ProblemLoader interface {
	Load(r io.Reader, m *model.Model) error
}

// XMLProblemLoader is the default ProblemLoader, round-tripping with
// XMLSolutionWriter's output schema.
type XMLProblemLoader struct{}

func NewXMLProblemLoader() *XMLProblemLoader { return &XMLProblemLoader{} }

func (l *XMLProblemLoader) Load(r io.Reader, m *model.Model) error {
	var doc problemDocument
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(xerrors.NewMalformedInput("decoding problem XML: %v", err), "xml decode")
	}

	for _, p := range doc.Periods {
		m.Periods[p.ID] = model.NewPeriod(p.ID, p.Index, p.Day, p.Time, p.Duration, p.Penalty)
	}
	for _, r := range doc.Rooms {
		m.Rooms[r.ID] = model.NewRoom(r.ID, r.Code, r.Capacity, r.AltCapacity)
	}
	for _, s := range doc.Students {
		att := model.NewAttendee(s.ID, s.Name)
		for _, periodID := range s.Unavailable {
			att.Unavailable[periodID] = true
		}
		m.Students[s.ID] = att
	}
	for _, ins := range doc.Teachers {
		att := model.NewAttendee(ins.ID, ins.Name)
		for _, periodID := range ins.Unavailable {
			att.Unavailable[periodID] = true
		}
		m.Instructors[ins.ID] = att
	}
	for _, d := range doc.Dists {
		m.Distributions[d.ID] = &model.DistributionConstraint{
			ID:      d.ID,
			Type:    model.DistributionType(d.Type),
			ExamIDs: d.ExamIDs,
			Hard:    d.Hard,
			Penalty: d.Penalty,
		}
	}
	for _, e := range doc.Exams {
		exam := &model.Exam{
			ID:              e.ID,
			Name:            e.Name,
			StudentCount:    e.StudentCount,
			StudentIDs:      e.StudentIDs,
			InstructorIDs:   e.InstructorIDs,
			DistributionIDs: e.DistIDs,
		}
		for _, pr := range e.Periods {
			exam.AllowedPeriods = append(exam.AllowedPeriods, model.PeriodPreference{
				PeriodID: pr.ID, Weight: pr.Weight, Hard: pr.Hard,
			})
		}
		for _, rr := range e.Rooms {
			exam.AllowedRooms = append(exam.AllowedRooms, model.RoomPreference{
				RoomID: rr.ID, Weight: rr.Weight, Hard: rr.Hard,
			})
		}
		m.Exams[e.ID] = exam
	}

	// The schema only carries the exam -> attendee direction; rebuild the
	// reverse index so Attendee.ExamIDs isn't silently left empty.
	for _, exam := range m.Exams {
		for _, sid := range exam.StudentIDs {
			if s, ok := m.Students[sid]; ok {
				s.ExamIDs = append(s.ExamIDs, exam.ID)
			}
		}
		for _, tid := range exam.InstructorIDs {
			if ins, ok := m.Instructors[tid]; ok {
				ins.ExamIDs = append(ins.ExamIDs, exam.ID)
			}
		}
	}

	if err := m.Finalize(); err != nil {
		return err
	}
	return nil
}

// SolutionWriter saves an Assignment as a pretty-printed XML document
// mirroring the input schema.
type SolutionWriter interface {
	Save(w io.Writer, m *model.Model, a model.Assignment) error
}

type xmlSolutionDocument struct {
	XMLName     xml.Name          `xml:"solution"`
	Assignments []xmlAssignmentEl `xml:"assignment"`
}

type xmlAssignmentEl struct {
	Exam   int    `xml:"exam,attr"`
	Period int    `xml:"period,attr"`
	Rooms  string `xml:"rooms,attr"`
}

// XMLSolutionWriter is the default SolutionWriter.
type XMLSolutionWriter struct{}

func NewXMLSolutionWriter() *XMLSolutionWriter { return &XMLSolutionWriter{} }

func (s *XMLSolutionWriter) Save(w io.Writer, m *model.Model, a model.Assignment) error {
	doc := xmlSolutionDocument{}
	for examID, p := range a.Placements() {
		doc.Assignments = append(doc.Assignments, xmlAssignmentEl{
			Exam:   examID,
			Period: p.Period.ID,
			Rooms:  roomIDsString(p),
		})
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return errors.Wrap(err, "writing xml header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding solution xml")
	}
	return nil
}

func roomIDsString(p *model.Placement) string {
	ids := p.RoomIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

var _ ProblemLoader = (*XMLProblemLoader)(nil)
var _ SolutionWriter = (*XMLSolutionWriter)(nil)
