package metaheuristic

import (
	"math"
	"math/rand"

	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/neighbour"
)

// SAConfig controls the Metropolis acceptance rule and cooling schedule
// (InitialTemp, CoolingRate), plus Reheat* fields to recover from
// premature convergence over a long-running search.
type SAConfig struct {
	InitialTemp float64
	CoolingRate float64
	// ReheatAfter is the number of consecutive rejections after which the
	// temperature is reset to InitialTemp; 0 disables reheating.
	ReheatAfter int
}

func DefaultSAConfig() SAConfig {
	return SAConfig{InitialTemp: 10.0, CoolingRate: 0.995, ReheatAfter: 200}
}

// SimulatedAnnealing accepts worsening moves with Boltzmann probability
// exp(-delta/temperature), cooling geometrically after every step: if
// delta < 0, accept; else accept with probability exp(-delta/temperature).
type SimulatedAnnealing struct {
	cfg             SAConfig
	rng             *rand.Rand
	temperature     float64
	sinceAccepted   int
}

func NewSimulatedAnnealing(cfg SAConfig, rng *rand.Rand) *SimulatedAnnealing {
	return &SimulatedAnnealing{cfg: cfg, rng: rng, temperature: cfg.InitialTemp}
}

func (sa *SimulatedAnnealing) Temperature() float64 { return sa.temperature }

func (sa *SimulatedAnnealing) Accept(iter int, m *model.Model, a model.Assignment, n neighbour.Neighbour) bool {
	delta := n.Value(m, a)
	accepted := false
	if delta < 0 {
		accepted = true
	} else if sa.temperature > 0 {
		probability := math.Exp(-delta / sa.temperature)
		if sa.rng.Float64() < probability {
			accepted = true
		}
	}

	if accepted {
		n.Assign(iter, a)
		sa.sinceAccepted = 0
	} else {
		sa.sinceAccepted++
		if sa.cfg.ReheatAfter > 0 && sa.sinceAccepted >= sa.cfg.ReheatAfter {
			sa.temperature = sa.cfg.InitialTemp
			sa.sinceAccepted = 0
		}
	}

	sa.temperature *= sa.cfg.CoolingRate
	return accepted
}
