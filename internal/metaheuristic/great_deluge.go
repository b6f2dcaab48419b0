package metaheuristic

import (
	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/neighbour"
)

// GreatDelugeConfig controls the water level's starting height (as a
// fraction above the assignment's value when the phase begins), how much
// it lowers after every accepted move, and the stagnation reset: after
// StagnationLimit consecutive rejections, the level jumps back up to
// current+slack so the search can escape a dried-up region instead of
// rejecting forever.
type GreatDelugeConfig struct {
	InitialBoostFactor float64
	DecayRate          float64
	StagnationLimit    int
	SlackFactor        float64
}

func DefaultGreatDelugeConfig() GreatDelugeConfig {
	return GreatDelugeConfig{InitialBoostFactor: 1.05, DecayRate: 0.9999, StagnationLimit: 500, SlackFactor: 0.02}
}

// GreatDeluge accepts any move that keeps the assignment's total value at
// or below a slowly-lowering "water level", the complementary acceptance
// rule to SimulatedAnnealing's probabilistic one: deterministic, and
// strictly non-increasing in how much worseness it tolerates over time,
// except for the occasional stagnation reset.
type GreatDeluge struct {
	cfg          GreatDelugeConfig
	level        float64
	ready        bool
	rejectStreak int
}

func NewGreatDeluge(cfg GreatDelugeConfig) *GreatDeluge {
	return &GreatDeluge{cfg: cfg}
}

// Level returns the current water level, or 0 if Accept has never been
// called (the level is seeded from the first observed total value).
func (gd *GreatDeluge) Level() float64 { return gd.level }

func (gd *GreatDeluge) Accept(iter int, m *model.Model, a model.Assignment, n neighbour.Neighbour) bool {
	current := m.TotalValue(a)
	if !gd.ready {
		gd.level = current * gd.cfg.InitialBoostFactor
		gd.ready = true
	}

	delta := n.Value(m, a)
	candidate := current + delta
	if candidate > gd.level {
		gd.rejectStreak++
		if gd.cfg.StagnationLimit > 0 && gd.rejectStreak >= gd.cfg.StagnationLimit {
			gd.level = current + current*gd.cfg.SlackFactor
			gd.rejectStreak = 0
		}
		return false
	}

	n.Assign(iter, a)
	gd.rejectStreak = 0
	gd.level *= gd.cfg.DecayRate
	if gd.level > candidate {
		gd.level = candidate
	}
	return true
}
