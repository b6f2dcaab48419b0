package model

// ContextOwner is a monotone-allocated handle identifying one component
// (a criterion, a neighbour selection, a metaheuristic) that keeps
// assignment-scoped mutable state. See the "assignment-keyed mutable
// context" design note: an arena indexed by (assignment, owner), both
// monotone integers, replaces the source's per-component hash lookup.
type ContextOwner int

// Context is the mutable, assignment-scoped state belonging to one owner.
// Concrete contexts are whatever the owning component needs (a running
// sum, a tabu ring buffer); the assignment only manages their lifecycle.
type Context interface{}

// ContextFactory builds a fresh Context the first time an owner asks for
// one against a given Assignment.
type ContextFactory func(Assignment) Context

// Assignment is the single authoritative source of "what is placed". All
// derived structures (conflict counts, criterion totals) are caches fed by
// its assign/unassign event stream. Both SingleAssignment and
// ParallelAssignment (package internal/assignment) implement this.
type Assignment interface {
	// GetValue returns the current placement of an exam, if assigned.
	GetValue(examID int) (*Placement, bool)
	// Assign replaces any existing placement for the exam. Panics if p is
	// infeasible — feasibility is the caller's (move generator's)
	// obligation.
	Assign(iter int, p *Placement)
	// Unassign removes any placement for examID. A no-op if already
	// unassigned.
	Unassign(iter int, examID int)
	// NrAssigned / NrUnassigned count variables in each state.
	NrAssigned() int
	NrUnassigned() int
	// Iteration returns the iteration counter last used by assign/unassign.
	Iteration() int
	// Context vends exactly one Context per (owner, assignment) pair,
	// lazily built by factory on first request.
	Context(owner ContextOwner, factory ContextFactory) Context
	// Placements returns a snapshot map of every currently assigned exam.
	// Used by distribution constraints and full rescoring; callers must
	// not mutate the returned map.
	Placements() map[int]*Placement
	// ConflictsFor returns the exams currently occupying the given
	// placement's (period, rooms) that would need to be unassigned for the
	// placement to be applied — i.e. the hard-conflict set.
	ConflictsFor(p *Placement) []int
}

// Criterion is a named, weighted scorer with an incremental delta contract.
// Implementations live in package internal/criteria; this
// interface is declared here so internal/model, internal/assignment and
// internal/construction can all depend on it without importing the
// criteria package (which itself depends on model).
type Criterion interface {
	Name() string
	// GetValue returns this criterion's total contribution under a.
	GetValue(a Assignment) float64
	// GetValueDelta returns the delta if p were assigned and every exam in
	// conflicts were unassigned first. Must run in time proportional to the
	// local neighbourhood of p, never a full rescoring.
	GetValueDelta(a Assignment, p *Placement, conflicts []int) float64
	// GetBounds returns the (min, max) this criterion can take under a,
	// used for normalization/reporting.
	GetBounds(a Assignment) (min, max float64)
	// GetWeight returns the configured weight for this criterion.
	GetWeight() float64
	// AfterAssigned / AfterUnassigned update this criterion's own context
	// after an assignment event has been committed.
	AfterAssigned(a Assignment, iter int, p *Placement)
	AfterUnassigned(a Assignment, iter int, p *Placement)
}
