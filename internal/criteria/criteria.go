// Package criteria implements the concrete, weighted scorers that plug
// into model.Criterion. The contract (incremental delta, additive total,
// idempotent) is defined in internal/model/contract.go; this package only
// supplies implementations.
package criteria

import (
	"timetabling-UDP/internal/model"
)

// base centralizes the bookkeeping every concrete criterion needs: a
// stable name (used as the registry key and in reports), a configured
// weight, and the ContextOwner handle that lets it keep an incremental
// running total per Assignment without a package-level map keyed by
// assignment (which would leak across solver runs).
type base struct {
	name   string
	weight float64
	owner  model.ContextOwner
}

func newBase(name string, weight float64, owner model.ContextOwner) base {
	return base{name: name, weight: weight, owner: owner}
}

func (b base) Name() string         { return b.name }
func (b base) GetWeight() float64   { return b.weight }

// runningTotal is the Context kept by every criterion in this package: a
// single incrementally-maintained float64, touched only from
// AfterAssigned/AfterUnassigned.
type runningTotal struct {
	value float64
}

func (b base) total(a model.Assignment, compute func() float64) *runningTotal {
	ctx := a.Context(b.owner, func(a model.Assignment) model.Context {
		return &runningTotal{value: compute()}
	})
	return ctx.(*runningTotal)
}

// nextOwner hands out monotone ContextOwner values across every criterion
// constructor in this package, one per (assignment, component) pair.
var ownerSeq int

func nextOwner() model.ContextOwner {
	ownerSeq++
	return model.ContextOwner(ownerSeq)
}

// Registry maps a configuration name to a constructor, so a weight file
// (internal/config) can turn a flat list of "name: weight" pairs into a
// live []model.Criterion without a giant switch statement living outside
// this package.
type Registry struct {
	ctors map[string]func(weight float64) model.Criterion
}

// NewRegistry builds the registry of every criterion this package ships.
// m is needed up front because several criteria (distribution, room size)
// close over model entities rather than re-resolving ids on every call.
func NewRegistry(m *model.Model) *Registry {
	r := &Registry{ctors: make(map[string]func(weight float64) model.Criterion)}

	r.register("StudentDirectConflicts", func(w float64) model.Criterion { return newAttendeeDirectConflicts(m, w, studentKind) })
	r.register("StudentBackToBackConflicts", func(w float64) model.Criterion { return newAttendeeBackToBack(m, w, studentKind, false) })
	r.register("StudentBackToBackDistance", func(w float64) model.Criterion { return newAttendeeBackToBack(m, w, studentKind, true) })
	r.register("StudentMoreThan2ADay", func(w float64) model.Criterion { return newAttendeeMoreThan2ADay(m, w, studentKind) })
	r.register("StudentNotAvailable", func(w float64) model.Criterion { return newAttendeeNotAvailable(m, w, studentKind) })

	r.register("InstructorDirectConflicts", func(w float64) model.Criterion { return newAttendeeDirectConflicts(m, w, instructorKind) })
	r.register("InstructorBackToBackConflicts", func(w float64) model.Criterion { return newAttendeeBackToBack(m, w, instructorKind, false) })
	r.register("InstructorBackToBackDistance", func(w float64) model.Criterion { return newAttendeeBackToBack(m, w, instructorKind, true) })
	r.register("InstructorMoreThan2ADay", func(w float64) model.Criterion { return newAttendeeMoreThan2ADay(m, w, instructorKind) })
	r.register("InstructorNotAvailable", func(w float64) model.Criterion { return newAttendeeNotAvailable(m, w, instructorKind) })

	r.register("PeriodPenalty", func(w float64) model.Criterion { return newPeriodPenalty(w) })
	r.register("PeriodIndexPenalty", func(w float64) model.Criterion { return newPeriodIndexPenalty(w) })
	r.register("PeriodSizePenalty", func(w float64) model.Criterion { return newPeriodSizePenalty(w) })

	r.register("RoomPenalty", func(w float64) model.Criterion { return newRoomPenalty(w) })
	r.register("RoomSizePenalty", func(w float64) model.Criterion { return newRoomSizePenalty(w) })
	r.register("RoomSplitPenalty", func(w float64) model.Criterion { return newRoomSplitPenalty(w) })
	r.register("RoomSplitDistancePenalty", func(w float64) model.Criterion { return newRoomSplitDistancePenalty(m, w) })

	r.register("DistributionPenalty", func(w float64) model.Criterion { return newDistributionPenalty(m, w) })
	r.register("LargeExamsPenalty", func(w float64) model.Criterion { return newLargeExamsPenalty(w) })
	r.register("PerturbationPenalty", func(w float64) model.Criterion { return newPerturbationPenalty(w) })

	// Named-but-not-bespoke criteria: each still needs a weight and a
	// contract, but no distinct scoring formula beyond "a penalty keyed by
	// some per-exam/per-room signal already on the model". genericPenalty
	// covers them uniformly rather than four near-identical bespoke types.
	for _, name := range []string{"ExamRotationPenalty", "RoomPerturbationPenalty", "HardConflictViolations", "HardAvailabilityViolations"} {
		name := name
		r.register(name, func(w float64) model.Criterion { return newGenericPenalty(name, w) })
	}

	return r
}

func (r *Registry) register(name string, ctor func(weight float64) model.Criterion) {
	r.ctors[name] = ctor
}

// Build instantiates one criterion per (name, weight) pair in weights, in
// map-iteration order is NOT guaranteed — callers that need stable
// ordering (reports, tests) should sort the returned slice by Name().
// Unknown names are a configuration error, reported to the caller instead
// of silently ignored.
func (r *Registry) Build(weights map[string]float64) ([]model.Criterion, []string) {
	var out []model.Criterion
	var unknown []string
	for name, w := range weights {
		ctor, ok := r.ctors[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, ctor(w))
	}
	return out, unknown
}

// Names returns every criterion name this registry can build, in no
// particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	return names
}
