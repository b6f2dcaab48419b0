// Package xerrors defines the solver's typed error taxonomy, each
// wrapping a github.com/pkg/errors-produced cause so every error carries
// a stack trace from where it was first raised, the same pattern
// model.MalformedInput already uses locally. Propagation rule:
// construction and the metaheuristics never surface these (a missing
// candidate is signaled by an empty/nil return, not an error); I/O
// errors surface up to cmd/solver; the shutdown hook always saves
// whatever best assignment exists regardless of which of these fired.
package xerrors

import "github.com/pkg/errors"

// MalformedInput indicates the problem file failed a referential or
// structural validation check (internal/model.Model.Finalize,
// internal/ioadapter's loader).
type MalformedInput struct {
	cause error
}

func NewMalformedInput(format string, args ...interface{}) error {
	return &MalformedInput{cause: errors.Errorf(format, args...)}
}

func (e *MalformedInput) Error() string { return e.cause.Error() }
func (e *MalformedInput) Unwrap() error { return e.cause }

// Infeasible indicates the solver could find no way to satisfy every
// hard constraint even after repair, and the best assignment returned
// still has unassigned exams or hard-conflict placements.
type Infeasible struct {
	cause error
}

func NewInfeasible(format string, args ...interface{}) error {
	return &Infeasible{cause: errors.Errorf(format, args...)}
}

func (e *Infeasible) Error() string { return e.cause.Error() }
func (e *Infeasible) Unwrap() error { return e.cause }

// ConfigError indicates a CLI flag, config file key, or criterion weight
// table failed validation before a run could start.
type ConfigError struct {
	cause error
}

func NewConfigError(format string, args ...interface{}) error {
	return &ConfigError{cause: errors.Errorf(format, args...)}
}

func (e *ConfigError) Error() string { return e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

// Interrupted indicates the run was stopped by a cancelled context
// (SIGINT, parent deadline) rather than by a TerminationCondition; the
// shutdown hook treats this the same as ordinary completion for the
// purpose of saving whatever best assignment currently exists.
type Interrupted struct {
	cause error
}

func NewInterrupted(format string, args ...interface{}) error {
	return &Interrupted{cause: errors.Errorf(format, args...)}
}

func (e *Interrupted) Error() string { return e.cause.Error() }
func (e *Interrupted) Unwrap() error { return e.cause }

// InternalInvariantViolation indicates the solver detected its own state
// breaking a documented invariant (e.g. a criterion's incremental total
// diverging from a full recompute) — a defect in this program, never a
// problem with the input, and never expected to be reached in production.
type InternalInvariantViolation struct {
	cause error
}

func NewInternalInvariantViolation(format string, args ...interface{}) error {
	return &InternalInvariantViolation{cause: errors.Errorf(format, args...)}
}

func (e *InternalInvariantViolation) Error() string { return e.cause.Error() }
func (e *InternalInvariantViolation) Unwrap() error { return e.cause }
