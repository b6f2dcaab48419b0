// Package phase implements the solver's phase controller: an explicit
// Phase enum and transition table that walks Construct -> Repair -> HC ->
// Metaheuristic -> Final -> Done, strictly monotonically, modeled on a
// one-way construction -> repair pipeline that never returns to an
// earlier stage once the next one has started.
package phase

// Phase identifies one stage of the solver pipeline. Numeric values are
// stable so logs/reports can print the raw ordinal alongside the name
// without a separate lookup table.
type Phase int

const (
	Init          Phase = -1
	Construct     Phase = 0
	Repair        Phase = 1
	HC            Phase = 2
	Metaheuristic Phase = 3
	Final         Phase = 9999
	Done          Phase = 10000
)

func (p Phase) String() string {
	switch p {
	case Init:
		return "Init"
	case Construct:
		return "Construct"
	case Repair:
		return "Repair"
	case HC:
		return "HC"
	case Metaheuristic:
		return "Metaheuristic"
	case Final:
		return "Final"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// next is the strictly-monotone transition table: every phase advances to
// exactly one successor regardless of outcome (construction leaving DUDs,
// repair not fully resolving conflicts, etc. never re-enter an earlier
// phase — the Open Question decision recorded in DESIGN.md).
var next = map[Phase]Phase{
	Init:          Construct,
	Construct:     Repair,
	Repair:        HC,
	HC:            Metaheuristic,
	Metaheuristic: Metaheuristic, // stays until FinalizeRequested or termination
	Final:         Done,
	Done:          Done,
}

// Controller drives the Phase state machine. Advance() moves forward one
// step on the ordinary path; RequestFinalize() is the only way to jump
// straight to Final from Metaheuristic, modeling a one-shot finalize
// message rather than a held function reference.
type Controller struct {
	current           Phase
	finalizeRequested bool
}

// NewController returns a controller positioned at Init.
func NewController() *Controller {
	return &Controller{current: Init}
}

// Current returns the phase the controller is presently in.
func (c *Controller) Current() Phase { return c.current }

// Advance moves the controller to its successor phase along the ordinary
// monotone path. It is a no-op once Done is reached.
func (c *Controller) Advance() Phase {
	if c.finalizeRequested && c.current == Metaheuristic {
		c.current = Final
		c.finalizeRequested = false
		return c.current
	}
	c.current = next[c.current]
	return c.current
}

// RequestFinalize posts the one-shot finalize message. It only has an
// effect once the controller is in (or reaches) Metaheuristic; requesting
// it during any other phase is recorded but has no effect until then,
// since only Metaheuristic's acceptance rule is wrapped by
// metaheuristic.Finalization.
func (c *Controller) RequestFinalize() {
	c.finalizeRequested = true
}

// FinalizePending reports whether a finalize request is queued and has
// not yet been acted on.
func (c *Controller) FinalizePending() bool { return c.finalizeRequested }

// Done reports whether the controller has reached the terminal phase.
func (c *Controller) Done() bool { return c.current == Done }
