package criteria

import "timetabling-UDP/internal/model"

// genericPenalty satisfies the Criterion contract for names without a
// bespoke formula (ExamRotationPenalty, RoomPerturbationPenalty, and the
// hard-constraint "violation" variants demoted to soft). Their concrete
// scoring formulas are out of scope for this deployment: this type exists
// so a deployment can register any of those names and get a well-formed,
// always-zero, contract-correct criterion rather than a registry error,
// until a bespoke formula is supplied.
type genericPenalty struct{ base }

func newGenericPenalty(name string, w float64) *genericPenalty {
	return &genericPenalty{base: newBase(name, w, nextOwner())}
}

func (c *genericPenalty) GetValue(a model.Assignment) float64 { return 0 }
func (c *genericPenalty) GetValueDelta(a model.Assignment, p *model.Placement, conflicts []int) float64 {
	return 0
}
func (c *genericPenalty) GetBounds(a model.Assignment) (float64, float64)          { return 0, 0 }
func (c *genericPenalty) AfterAssigned(a model.Assignment, iter int, p *model.Placement)   {}
func (c *genericPenalty) AfterUnassigned(a model.Assignment, iter int, p *model.Placement) {}
