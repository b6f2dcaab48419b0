// Package assignment implements the mutable "what is placed where" store
// that sits beneath every criterion, neighbour and search phase, behind an
// explicit interface so a single-threaded and a parallel variant can share
// the same consumers.
package assignment

import (
	"sync"

	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/xerrors"
)

// SingleAssignment is the non-concurrent Assignment used by the
// single-threaded runner and by every test. All bookkeeping (per-period
// room occupancy, per-student/instructor busy periods) is maintained
// incrementally on Assign/Unassign so GetValue and ConflictsFor never scan
// the whole model.
type SingleAssignment struct {
	model *model.Model

	placements map[int]*model.Placement // examID -> placement
	iteration  int

	// periodRoomOccupant[periodID][roomID] = examID currently using that
	// room in that period. Used by ConflictsFor for hard room conflicts.
	periodRoomOccupant map[int]map[int]int

	// periodAttendee[periodID][attendeeID] = true if busy. Separate maps
	// for students and instructors since an id space may overlap.
	periodStudent    map[int]map[int]bool
	periodInstructor map[int]map[int]bool

	contexts map[model.ContextOwner]model.Context
}

// NewSingleAssignment returns an empty assignment over m.
func NewSingleAssignment(m *model.Model) *SingleAssignment {
	return &SingleAssignment{
		model:              m,
		placements:         make(map[int]*model.Placement),
		periodRoomOccupant: make(map[int]map[int]int),
		periodStudent:      make(map[int]map[int]bool),
		periodInstructor:   make(map[int]map[int]bool),
		contexts:           make(map[model.ContextOwner]model.Context),
	}
}

func (a *SingleAssignment) GetValue(examID int) (*model.Placement, bool) {
	p, ok := a.placements[examID]
	return p, ok
}

func (a *SingleAssignment) NrAssigned() int   { return len(a.placements) }
func (a *SingleAssignment) NrUnassigned() int { return len(a.model.Exams) - len(a.placements) }
func (a *SingleAssignment) Iteration() int    { return a.iteration }

func (a *SingleAssignment) Placements() map[int]*model.Placement {
	out := make(map[int]*model.Placement, len(a.placements))
	for k, v := range a.placements {
		out[k] = v
	}
	return out
}

// ConflictsFor returns the exams that would need to be unassigned for p to
// become valid: other exams occupying any of p's rooms in p's period.
// Student/instructor clashes are soft (scored by criteria, not blocking),
// so they are not included here; only room co-occupancy is a hard
// conflict, mirroring the source's graph-adjacency definition of conflict.
func (a *SingleAssignment) ConflictsFor(p *model.Placement) []int {
	occupants := a.periodRoomOccupant[p.Period.ID]
	if occupants == nil {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, r := range p.Rooms {
		if examID, ok := occupants[r.ID]; ok && examID != p.Exam.ID && !seen[examID] {
			seen[examID] = true
			out = append(out, examID)
		}
	}
	return out
}

// Assign places p, first unassigning whatever was previously in p.Exam.ID
// and whatever was occupying any of p's rooms in p's period (callers are
// expected to have resolved conflicts via ConflictsFor first; Assign itself
// just evicts to keep the store's invariants intact). Every eviction and
// the final placement both notify the model's criteria so their
// incrementally-maintained running totals never drift from a full
// rescoring. Panics if p fails Feasible: producing an infeasible placement
// is a move generator's bug, never a valid input to this store.
func (a *SingleAssignment) Assign(iter int, p *model.Placement) {
	if err := p.Feasible(a.model); err != nil {
		panic(xerrors.NewInternalInvariantViolation("assign: %v", err))
	}
	a.iteration = iter
	for _, examID := range a.ConflictsFor(p) {
		a.unassign(iter, examID)
	}
	a.unassign(iter, p.Exam.ID)

	a.placements[p.Exam.ID] = p
	a.occupy(p)
	a.notifyAssigned(iter, p)
}

func (a *SingleAssignment) Unassign(iter int, examID int) {
	a.iteration = iter
	a.unassign(iter, examID)
}

func (a *SingleAssignment) unassign(iter int, examID int) {
	// Touch every criterion's running total before the store changes, so a
	// context created lazily is seeded from the pre-event state and the
	// After hooks that follow patch it exactly once.
	for _, c := range a.model.Criteria {
		c.GetValue(a)
	}
	old, ok := a.placements[examID]
	if !ok {
		return
	}
	delete(a.placements, examID)
	a.vacate(old)
	a.notifyUnassigned(iter, old)
}

func (a *SingleAssignment) notifyAssigned(iter int, p *model.Placement) {
	for _, c := range a.model.Criteria {
		c.AfterAssigned(a, iter, p)
	}
}

func (a *SingleAssignment) notifyUnassigned(iter int, p *model.Placement) {
	for _, c := range a.model.Criteria {
		c.AfterUnassigned(a, iter, p)
	}
}

func (a *SingleAssignment) occupy(p *model.Placement) {
	if a.periodRoomOccupant[p.Period.ID] == nil {
		a.periodRoomOccupant[p.Period.ID] = make(map[int]int)
	}
	for _, r := range p.Rooms {
		a.periodRoomOccupant[p.Period.ID][r.ID] = p.Exam.ID
	}
	a.markAttendees(p, true)
}

func (a *SingleAssignment) vacate(p *model.Placement) {
	if occ := a.periodRoomOccupant[p.Period.ID]; occ != nil {
		for _, r := range p.Rooms {
			if occ[r.ID] == p.Exam.ID {
				delete(occ, r.ID)
			}
		}
	}
	a.markAttendees(p, false)
}

func (a *SingleAssignment) markAttendees(p *model.Placement, busy bool) {
	for _, sid := range p.Exam.StudentIDs {
		a.setBusy(a.periodStudent, p.Period.ID, sid, busy)
	}
	for _, iid := range p.Exam.InstructorIDs {
		a.setBusy(a.periodInstructor, p.Period.ID, iid, busy)
	}
}

func (a *SingleAssignment) setBusy(m map[int]map[int]bool, periodID, attendeeID int, busy bool) {
	if busy {
		if m[periodID] == nil {
			m[periodID] = make(map[int]bool)
		}
		m[periodID][attendeeID] = true
		return
	}
	if m[periodID] != nil {
		delete(m[periodID], attendeeID)
	}
}

// StudentBusy reports whether studentID sits an exam in periodID.
func (a *SingleAssignment) StudentBusy(periodID, studentID int) bool {
	return a.periodStudent[periodID][studentID]
}

// InstructorBusy reports whether instructorID invigilates in periodID.
func (a *SingleAssignment) InstructorBusy(periodID, instructorID int) bool {
	return a.periodInstructor[periodID][instructorID]
}

func (a *SingleAssignment) Context(owner model.ContextOwner, factory model.ContextFactory) model.Context {
	if c, ok := a.contexts[owner]; ok {
		return c
	}
	c := factory(a)
	a.contexts[owner] = c
	return c
}

// ParallelAssignment wraps a SingleAssignment with a mutex so several
// worker goroutines (internal/solver.ParallelRunner) can share it: the
// runner keeps the global best in one, workers copy improvements in via
// CopyFrom and read it back via Snapshot, while each worker searches on
// its own private SingleAssignment.
type ParallelAssignment struct {
	mu    sync.RWMutex
	inner *SingleAssignment
}

func NewParallelAssignment(m *model.Model) *ParallelAssignment {
	return &ParallelAssignment{inner: NewSingleAssignment(m)}
}

func (a *ParallelAssignment) GetValue(examID int) (*model.Placement, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.GetValue(examID)
}

func (a *ParallelAssignment) Assign(iter int, p *model.Placement) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inner.Assign(iter, p)
}

func (a *ParallelAssignment) Unassign(iter int, examID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inner.Unassign(iter, examID)
}

func (a *ParallelAssignment) NrAssigned() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.NrAssigned()
}

func (a *ParallelAssignment) NrUnassigned() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.NrUnassigned()
}

func (a *ParallelAssignment) Iteration() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Iteration()
}

func (a *ParallelAssignment) Placements() map[int]*model.Placement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Placements()
}

func (a *ParallelAssignment) ConflictsFor(p *model.Placement) []int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.ConflictsFor(p)
}

func (a *ParallelAssignment) Context(owner model.ContextOwner, factory model.ContextFactory) model.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Context(owner, factory)
}

// CopyFrom replaces this assignment's full state with a deep enough copy
// of src's placements, used by the parallel runner's single promotion
// point to adopt a worker's improved solution as the shared best without
// sharing mutable state across goroutines.
func (a *ParallelAssignment) CopyFrom(src *SingleAssignment) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fresh := NewSingleAssignment(a.inner.model)
	iter := src.Iteration()
	for _, p := range src.Placements() {
		fresh.Assign(iter, p)
	}
	a.inner = fresh
}

// Snapshot returns a single-threaded copy of the current state, used when
// a worker seeds its private assignment from the shared best.
func (a *ParallelAssignment) Snapshot() *SingleAssignment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fresh := NewSingleAssignment(a.inner.model)
	iter := a.inner.Iteration()
	for _, p := range a.inner.Placements() {
		fresh.Assign(iter, p)
	}
	return fresh
}

var (
	_ model.Assignment = (*SingleAssignment)(nil)
	_ model.Assignment = (*ParallelAssignment)(nil)
)
