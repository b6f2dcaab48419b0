package criteria

import (
	"timetabling-UDP/internal/model"
)

// attendeeKind selects whether a generic attendee criterion reads
// Exam.StudentIDs or Exam.InstructorIDs, letting one implementation serve
// every Instructor criterion without duplicating the Student versions
// (model.Student and model.Instructor are the same underlying type, see
// internal/model/attendee.go).
type attendeeKind int

const (
	studentKind attendeeKind = iota
	instructorKind
)

func attendeeIDs(kind attendeeKind, e *model.Exam) []int {
	if kind == instructorKind {
		return e.InstructorIDs
	}
	return e.StudentIDs
}

// pairwiseOverlap counts, for two exams' attendee id lists, how many ids
// appear in both — the shared-attendee count that direct-conflict and
// back-to-back criteria both need.
func pairwiseOverlap(a, b []int) int {
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

// attendeeDirectConflicts sums, over every pair of exams placed in the
// same period, the number of attendees the two exams share — a
// hard constraint in most timetabling formulations, carried here as a
// heavily-weighted soft criterion so repair/metaheuristic phases can
// reason about "how far from zero" rather than a hard reject.
type attendeeDirectConflicts struct {
	base
	model *model.Model
	kind  attendeeKind
}

func newAttendeeDirectConflicts(m *model.Model, w float64, kind attendeeKind) *attendeeDirectConflicts {
	name := "StudentDirectConflicts"
	if kind == instructorKind {
		name = "InstructorDirectConflicts"
	}
	return &attendeeDirectConflicts{base: newBase(name, w, nextOwner()), model: m, kind: kind}
}

func (c *attendeeDirectConflicts) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.fullCount(a) }).value
}

func (c *attendeeDirectConflicts) fullCount(a model.Assignment) float64 {
	placements := a.Placements()
	ids := make([]int, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	count := 0.0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pi, pj := placements[ids[i]], placements[ids[j]]
			if pi.Period.ID != pj.Period.ID {
				continue
			}
			count += float64(pairwiseOverlap(attendeeIDs(c.kind, pi.Exam), attendeeIDs(c.kind, pj.Exam)))
		}
	}
	return count
}

func (c *attendeeDirectConflicts) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	delta := 0.0
	for _, examID := range conflicts {
		if old, ok := a.GetValue(examID); ok {
			delta -= float64(countConflictsWith(a, c.kind, old, p.Period.ID, examID))
		}
	}
	if old, ok := a.GetValue(p.Exam.ID); ok {
		delta -= float64(countConflictsWith(a, c.kind, old, old.Period.ID, p.Exam.ID))
	}
	delta += float64(countConflictsWith(a, c.kind, p, p.Period.ID, p.Exam.ID))
	return delta
}

// countConflictsWith sums attendee overlap between p and every other exam
// currently placed in periodID, excluding selfID.
func countConflictsWith(a model.Assignment, kind attendeeKind, p *model.Placement, periodID, selfID int) int {
	total := 0
	for examID, other := range a.Placements() {
		if examID == selfID || other.Period.ID != periodID {
			continue
		}
		total += pairwiseOverlap(attendeeIDs(kind, p.Exam), attendeeIDs(kind, other.Exam))
	}
	return total
}

func (c *attendeeDirectConflicts) GetBounds(a model.Assignment) (float64, float64) {
	return 0, c.fullCount(a)
}

// AfterAssigned/AfterUnassigned patch the running total by the overlap
// between p and whatever else is already placed in p's period, rather
// than rescoring every pair in the model: by the time either hook fires,
// a.Placements() already reflects the event (p present for AfterAssigned,
// absent for AfterUnassigned), so countConflictsWith's loop over the
// current placements is exactly the marginal contribution being added or
// removed.
func (c *attendeeDirectConflicts) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	delta := float64(countConflictsWith(a, c.kind, p, p.Period.ID, p.Exam.ID))
	c.total(a, func() float64 { return c.fullCount(a) }).value += delta
}

func (c *attendeeDirectConflicts) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	delta := float64(countConflictsWith(a, c.kind, p, p.Period.ID, p.Exam.ID))
	c.total(a, func() float64 { return c.fullCount(a) }).value -= delta
}

// attendeeBackToBack counts attendees who sit/invigilate two exams in
// directly adjacent periods on the same day. If distance is true, each
// occurrence is weighted by 1/IndexDistance instead of counted flat.
type attendeeBackToBack struct {
	base
	model    *model.Model
	kind     attendeeKind
	distance bool
}

func newAttendeeBackToBack(m *model.Model, w float64, kind attendeeKind, distance bool) *attendeeBackToBack {
	name := "StudentBackToBackConflicts"
	if kind == instructorKind {
		name = "InstructorBackToBackConflicts"
	}
	if distance {
		name += "Distance"
	}
	return &attendeeBackToBack{base: newBase(name, w, nextOwner()), model: m, kind: kind, distance: distance}
}

func (c *attendeeBackToBack) score(pi, pj *model.Placement) float64 {
	if !model.SamePeriodDay(pi.Period, pj.Period) {
		return 0
	}
	d := model.IndexDistance(pi.Period, pj.Period)
	if d != 1 {
		return 0
	}
	overlap := pairwiseOverlap(attendeeIDs(c.kind, pi.Exam), attendeeIDs(c.kind, pj.Exam))
	if overlap == 0 {
		return 0
	}
	if c.distance {
		return float64(overlap) / float64(d)
	}
	return float64(overlap)
}

func (c *attendeeBackToBack) full(a model.Assignment) float64 {
	placements := a.Placements()
	ids := make([]int, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	total := 0.0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			total += c.score(placements[ids[i]], placements[ids[j]])
		}
	}
	return total
}

func (c *attendeeBackToBack) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *attendeeBackToBack) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	excluded := map[int]bool{p.Exam.ID: true}
	for _, id := range conflicts {
		excluded[id] = true
	}
	delta := 0.0
	for examID, other := range a.Placements() {
		if excluded[examID] {
			continue
		}
		if old, ok := a.GetValue(p.Exam.ID); ok {
			delta -= c.score(old, other)
		}
		delta += c.score(p, other)
	}
	return delta
}

func (c *attendeeBackToBack) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }

// AfterAssigned/AfterUnassigned patch the running total by p's pairwise
// score against every other currently-placed exam instead of rescoring
// every pair in the model (same reasoning as attendeeDirectConflicts).
func (c *attendeeBackToBack) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	delta := 0.0
	for examID, other := range a.Placements() {
		if examID == p.Exam.ID {
			continue
		}
		delta += c.score(p, other)
	}
	c.total(a, func() float64 { return c.full(a) }).value += delta
}
func (c *attendeeBackToBack) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	delta := 0.0
	for examID, other := range a.Placements() {
		if examID == p.Exam.ID {
			continue
		}
		delta += c.score(p, other)
	}
	c.total(a, func() float64 { return c.full(a) }).value -= delta
}

// attendeeMoreThan2ADay counts, per attendee per day, exams beyond the
// second — i.e. penalizes days with 3+ exams for the same attendee.
type attendeeMoreThan2ADay struct {
	base
	model *model.Model
	kind  attendeeKind
}

func newAttendeeMoreThan2ADay(m *model.Model, w float64, kind attendeeKind) *attendeeMoreThan2ADay {
	name := "StudentMoreThan2ADay"
	if kind == instructorKind {
		name = "InstructorMoreThan2ADay"
	}
	return &attendeeMoreThan2ADay{base: newBase(name, w, nextOwner()), model: m, kind: kind}
}

func (c *attendeeMoreThan2ADay) full(a model.Assignment) float64 {
	// attendeeID -> day -> count
	perDay := make(map[int]map[int]int)
	for _, p := range a.Placements() {
		for _, id := range attendeeIDs(c.kind, p.Exam) {
			if perDay[id] == nil {
				perDay[id] = make(map[int]int)
			}
			perDay[id][p.Period.Day]++
		}
	}
	total := 0.0
	for _, days := range perDay {
		for _, n := range days {
			if n > 2 {
				total += float64(n - 2)
			}
		}
	}
	return total
}

func (c *attendeeMoreThan2ADay) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *attendeeMoreThan2ADay) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	// Recomputing the full per-attendee/day histogram is simplest to keep
	// correct for this criterion; both full() calls walk every placement,
	// so the cost grows with the whole assignment, not just p's attendees.
	before := c.full(a)
	shadow := cloneWithMove(a, p, conflicts)
	after := c.full(shadow)
	return after - before
}

func (c *attendeeMoreThan2ADay) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }

// AfterAssigned/AfterUnassigned rescore the whole per-attendee/day
// histogram, same as GetValueDelta above: the per-day threshold makes the
// contribution of one placement depend on how many other exams its
// attendees already sit that day, so there is no cheaper local update
// that stays correct.
func (c *attendeeMoreThan2ADay) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}
func (c *attendeeMoreThan2ADay) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value = c.full(a)
}

// attendeeNotAvailable counts assignments that place an exam in a period
// where one of its attendees is marked unavailable.
type attendeeNotAvailable struct {
	base
	model *model.Model
	kind  attendeeKind
}

func newAttendeeNotAvailable(m *model.Model, w float64, kind attendeeKind) *attendeeNotAvailable {
	name := "StudentNotAvailable"
	if kind == instructorKind {
		name = "InstructorNotAvailable"
	}
	return &attendeeNotAvailable{base: newBase(name, w, nextOwner()), model: m, kind: kind}
}

func (c *attendeeNotAvailable) registry() map[int]*model.Attendee {
	if c.kind == instructorKind {
		return c.model.Instructors
	}
	return c.model.Students
}

func (c *attendeeNotAvailable) countFor(p *model.Placement) float64 {
	reg := c.registry()
	count := 0.0
	for _, id := range attendeeIDs(c.kind, p.Exam) {
		if att := reg[id]; att != nil && att.IsUnavailable(p.Period.ID) {
			count++
		}
	}
	return count
}

func (c *attendeeNotAvailable) full(a model.Assignment) float64 {
	total := 0.0
	for _, p := range a.Placements() {
		total += c.countFor(p)
	}
	return total
}

func (c *attendeeNotAvailable) GetValue(a model.Assignment) float64 {
	return c.total(a, func() float64 { return c.full(a) }).value
}

func (c *attendeeNotAvailable) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	delta := c.countFor(p)
	if old, ok := a.GetValue(p.Exam.ID); ok {
		delta -= c.countFor(old)
	}
	for _, examID := range conflicts {
		if old, ok := a.GetValue(examID); ok {
			delta -= c.countFor(old)
		}
	}
	return delta
}

func (c *attendeeNotAvailable) GetBounds(a model.Assignment) (float64, float64) { return 0, c.full(a) }

// AfterAssigned/AfterUnassigned patch the running total by countFor(p)
// alone: this criterion only looks at p's own attendees against its own
// period, independent of every other placement, so no rescoring is
// needed in either direction.
func (c *attendeeNotAvailable) AfterAssigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value += c.countFor(p)
}
func (c *attendeeNotAvailable) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {
	c.total(a, func() float64 { return c.full(a) }).value -= c.countFor(p)
}

// cloneWithMove materializes a throwaway in-memory placements map with p
// applied and conflicts removed, used only by criteria (like
// MoreThan2ADay) whose delta is cheapest to express as "recompute a small
// histogram before/after" rather than as an analytic formula. It does not
// go through a full Assignment implementation; shadowAssignment below
// supplies just enough of the interface for full() to run against it.
func cloneWithMove(a model.Assignment, p *model.Placement, conflicts []int) model.Assignment {
	placements := a.Placements()
	for _, id := range conflicts {
		delete(placements, id)
	}
	delete(placements, p.Exam.ID)
	placements[p.Exam.ID] = p
	return shadowAssignment{placements: placements}
}

// shadowAssignment is a minimal, read-only model.Assignment over a fixed
// placements map, used solely to re-run a criterion's full() against a
// hypothetical state without mutating the real assignment.
type shadowAssignment struct {
	placements map[int]*model.Placement
}

func (s shadowAssignment) GetValue(examID int) (*model.Placement, bool) {
	p, ok := s.placements[examID]
	return p, ok
}
func (s shadowAssignment) Assign(iter int, p *model.Placement)    {}
func (s shadowAssignment) Unassign(iter int, examID int)          {}
func (s shadowAssignment) NrAssigned() int                        { return len(s.placements) }
func (s shadowAssignment) NrUnassigned() int                      { return 0 }
func (s shadowAssignment) Iteration() int                         { return 0 }
func (s shadowAssignment) Placements() map[int]*model.Placement   { return s.placements }
func (s shadowAssignment) ConflictsFor(p *model.Placement) []int  { return nil }
func (s shadowAssignment) Context(o model.ContextOwner, f model.ContextFactory) model.Context {
	return f(s)
}

var _ model.Assignment = shadowAssignment{}
