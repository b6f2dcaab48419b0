// Package solver ties construction, repair, hill-climbing, metaheuristic
// acceptance, and the phase controller into one orchestrated run, plus
// the termination conditions and listener multicast that observe it. One
// package houses Solution alongside every phase's driver, open-ended
// enough to add phases without reworking a fixed pipeline.
package solver

import (
	"time"

	"timetabling-UDP/internal/model"
)

// Solution is the value every TerminationCondition and SolutionListener
// observes: the live assignment plus bookkeeping about how far the run
// has gotten and what the best assignment seen so far looked like.
type Solution struct {
	Model      *model.Model
	Assignment model.Assignment
	Iteration  int
	Elapsed    time.Duration

	// Best is a snapshot of the best assignment observed so far, or nil
	// if BestSaved has never fired. It is always a disjoint copy, never
	// an alias of Assignment, so callers can keep mutating Assignment
	// freely after reading Best.
	Best      model.Assignment
	BestValue float64
	hasBest   bool
}

// NewSolution wraps a model/assignment pair at iteration 0.
func NewSolution(m *model.Model, a model.Assignment) *Solution {
	return &Solution{Model: m, Assignment: a}
}

// Value returns the live assignment's total weighted criterion value.
func (s *Solution) Value() float64 { return s.Model.TotalValue(s.Assignment) }

// HasBest reports whether a best snapshot has ever been saved.
func (s *Solution) HasBest() bool { return s.hasBest }
