package model

// Student and Instructor both attend a set of exams and carry per-period
// availability. They are structurally identical; Attendee captures that
// shared shape so criteria can treat both uniformly (see
// internal/criteria/attendee.go).
type Attendee struct {
	ID            int
	Name          string
	ExamIDs       []int
	Unavailable   map[int]bool // periodID -> unavailable
	BackToBackOK  bool         // carried on the model; no criterion reads it
}

// Student is an Attendee attending exams.
type Student = Attendee

// Instructor is an Attendee invigilating/teaching exams.
type Instructor = Attendee

// NewAttendee constructs an Attendee with empty availability.
func NewAttendee(id int, name string) *Attendee {
	return &Attendee{ID: id, Name: name, Unavailable: make(map[int]bool)}
}

// IsUnavailable reports whether this attendee cannot sit/invigilate during
// the given period.
func (a *Attendee) IsUnavailable(periodID int) bool {
	return a.Unavailable[periodID]
}
