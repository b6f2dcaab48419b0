package solver

import (
	"context"
	"math/rand"
	"time"

	"timetabling-UDP/internal/assignment"
	"timetabling-UDP/internal/construction"
	"timetabling-UDP/internal/metaheuristic"
	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/neighbour"
	"timetabling-UDP/internal/phase"
	"timetabling-UDP/internal/repair"
	"timetabling-UDP/internal/xerrors"
)

// Config bundles the tunables every phase of a Solver run reads, one flat
// struct matching the SAConfig/GreatDelugeConfig/CBSTabuSelector
// constructor shapes those packages already expose, so cmd/solver's flag
// binding has one place to populate before calling NewSolver.
type Config struct {
	SimulatedAnnealing metaheuristic.SAConfig
	GreatDeluge        metaheuristic.GreatDelugeConfig
	TabuSize           int
	CBSBeta            float64
	RepairIterations   int
	// UseGreatDeluge selects GreatDeluge over SimulatedAnnealing for the
	// Metaheuristic phase; both acceptance rules stay available side by side.
	UseGreatDeluge bool
}

func DefaultConfig() Config {
	return Config{
		SimulatedAnnealing: metaheuristic.DefaultSAConfig(),
		GreatDeluge:        metaheuristic.DefaultGreatDelugeConfig(),
		TabuSize:           50,
		CBSBeta:            1.0,
		RepairIterations:   1000,
	}
}

// Solver orchestrates Construct -> Repair -> HC -> Metaheuristic -> Final
// against one model/assignment pair, driven by internal/phase.Controller:
// one package housing every phase's driver side by side, with the phase
// boundaries made an explicit state machine instead of sequential
// function calls.
type Solver struct {
	model      *model.Model
	assignment model.Assignment
	rng        *rand.Rand
	listeners  *Listeners
	phase      *phase.Controller
	cfg        Config

	moveSelectors     []moveSelector
	acceptor          *metaheuristic.Finalization
	pendingUnassigned []int
}

type moveSelector interface {
	Select(m *model.Model, a model.Assignment) neighbour.Neighbour
}

// NewSolver wires one run's selectors and acceptance rule. listeners may
// be nil (no observers registered).
func NewSolver(m *model.Model, a model.Assignment, rng *rand.Rand, listeners *Listeners) *Solver {
	return NewSolverWithConfig(m, a, rng, listeners, DefaultConfig())
}

func NewSolverWithConfig(m *model.Model, a model.Assignment, rng *rand.Rand, listeners *Listeners, cfg Config) *Solver {
	if listeners == nil {
		listeners = &Listeners{}
	}

	var inner metaheuristic.Acceptor
	if cfg.UseGreatDeluge {
		inner = metaheuristic.NewGreatDeluge(cfg.GreatDeluge)
	} else {
		inner = metaheuristic.NewSimulatedAnnealing(cfg.SimulatedAnnealing, rng)
	}

	return &Solver{
		model:      m,
		assignment: a,
		rng:        rng,
		listeners:  listeners,
		phase:      phase.NewController(),
		cfg:        cfg,
		moveSelectors: []moveSelector{
			neighbour.NewExamRandomMove(rng),
			neighbour.NewExamRoomMove(rng),
			neighbour.NewExamTimeMove(rng),
			neighbour.NewExamSplit(rng),
		},
		acceptor: metaheuristic.NewFinalization(inner),
	}
}

// RequestFinalize posts the one-shot finalize message; typically called
// from a TerminationCondition observer or an external shutdown hook once
// the caller has decided the run should wrap up with one strict
// hill-climbing sweep.
func (s *Solver) RequestFinalize() {
	s.phase.RequestFinalize()
	s.acceptor.RequestFinalize()
}

// Run drives the phase sequence until Done or ctx is cancelled,
// respecting terminate during the Metaheuristic phase (the only phase
// with no natural stopping point of its own). Construction, repair and
// hill-climbing each run to their own completion condition and never
// consult terminate.
func (s *Solver) Run(ctx context.Context, terminate TerminationCondition) (*Solution, error) {
	start := time.Now()
	sol := NewSolution(s.model, s.assignment)
	s.listeners.fireBestCleared(sol)

	for !s.phase.Done() {
		select {
		case <-ctx.Done():
			s.restoreBest(sol)
			s.considerBest(sol)
			return sol, xerrors.NewInterrupted("run cancelled during phase %s", s.phase.Current())
		default:
		}

		sol.Elapsed = time.Since(start)
		sol.Iteration = s.assignment.Iteration()

		switch s.phase.Current() {
		case phase.Init:
			s.phase.Advance()
		case phase.Construct:
			s.runConstruction(sol)
			s.phase.Advance()
		case phase.Repair:
			s.runRepair(sol)
			s.phase.Advance()
		case phase.HC:
			s.runHillClimbing(sol)
			s.phase.Advance()
		case phase.Metaheuristic:
			if !terminate.CanContinue(sol) {
				s.RequestFinalize()
			}
			s.runMetaheuristicStep(sol)
			s.phase.Advance()
		case phase.Final:
			s.restoreBest(sol)
			s.runFinal(sol)
			s.phase.Advance()
		}
	}

	s.considerBest(sol)
	return sol, nil
}

func (s *Solver) runConstruction(sol *Solution) {
	coloring := construction.NewColoringConstruction(s.model)
	periodOf := coloring.Run(s.model)

	ec := construction.NewExamConstruction()
	dud := ec.Run(s.model, s.assignment, s.assignment.Iteration()+1, periodOf)
	sol.Iteration = s.assignment.Iteration()
	s.listeners.fireSolutionUpdated(sol)
	s.pendingUnassigned = dud
}

func (s *Solver) runRepair(sol *Solution) {
	selector := repair.NewCBSTabuSelector(s.cfg.TabuSize, s.cfg.CBSBeta)
	remaining := selector.Run(s.model, s.assignment, s.assignment.Iteration()+1, s.pendingUnassigned, s.cfg.RepairIterations)
	s.pendingUnassigned = remaining
	sol.Iteration = s.assignment.Iteration()
	s.listeners.fireSolutionUpdated(sol)
}

// runHillClimbing tries one non-worsening move per selector each round,
// stopping once maxIdleRounds rounds in a row bring no improvement in
// total value (accepted neutral moves do not reset the idle count).
func (s *Solver) runHillClimbing(sol *Solution) {
	hc := metaheuristic.NewHillClimbing()
	const maxIdleRounds = 200
	idle := 0
	for idle < maxIdleRounds {
		improved := false
		for _, sel := range s.moveSelectors {
			n := sel.Select(s.model, s.assignment)
			if n == nil {
				continue
			}
			before := s.model.TotalValue(s.assignment)
			if hc.Accept(s.assignment.Iteration()+1, s.model, s.assignment, n) {
				if before-s.model.TotalValue(s.assignment) > 1e-9 {
					improved = true
				}
				sol.Iteration = s.assignment.Iteration()
				s.listeners.fireSolutionUpdated(sol)
				s.considerBest(sol)
			}
		}
		if improved {
			idle = 0
		} else {
			idle++
		}
	}
}

// runMetaheuristicStep evaluates exactly one candidate move from a
// randomly chosen selector against the wrapped acceptance rule (SA or
// GD, or one finalize-triggered hill-climbing step), the smallest unit
// of work the phase loop repeats every iteration while terminate allows.
func (s *Solver) runMetaheuristicStep(sol *Solution) {
	sel := s.moveSelectors[s.rng.Intn(len(s.moveSelectors))]
	n := sel.Select(s.model, s.assignment)
	if n == nil {
		return
	}
	if s.acceptor.Accept(s.assignment.Iteration()+1, s.model, s.assignment, n) {
		sol.Iteration = s.assignment.Iteration()
		s.listeners.fireSolutionUpdated(sol)
		s.considerBest(sol)
	}
}

// runFinal runs the closing hill-climbing sweep over the best-restored
// assignment (restoreBest is called by the caller before this), so the
// one non-worsening pass in this phase can only ever match or
// beat the best seen so far, never wander off a worse live assignment
// left behind by SA/GD's worsening-move acceptance.
func (s *Solver) runFinal(sol *Solution) {
	s.runHillClimbing(sol)
	s.considerBest(sol)
}

// restoreBest resets the live assignment to the last saved best snapshot,
// discarding any worsening moves accepted since, and fires BestRestored.
// A no-op if no best has been saved yet.
func (s *Solver) restoreBest(sol *Solution) {
	if !sol.HasBest() {
		return
	}
	iter := s.assignment.Iteration() + 1
	for examID := range s.assignment.Placements() {
		s.assignment.Unassign(iter, examID)
	}
	for _, p := range sol.Best.Placements() {
		s.assignment.Assign(iter, p)
	}
	sol.Iteration = s.assignment.Iteration()
	s.listeners.fireBestRestored(sol)
}

func (s *Solver) considerBest(sol *Solution) {
	value := sol.Value()
	if sol.HasBest() && value >= sol.BestValue {
		return
	}
	s.saveBest(sol)
}

func (s *Solver) saveBest(sol *Solution) {
	sol.Best = cloneAssignment(s.model, s.assignment)
	sol.BestValue = sol.Value()
	sol.hasBest = true
	s.listeners.fireBestSaved(sol)
}

func cloneAssignment(m *model.Model, a model.Assignment) model.Assignment {
	fresh := assignment.NewSingleAssignment(m)
	iter := a.Iteration()
	for _, p := range a.Placements() {
		fresh.Assign(iter, p)
	}
	return fresh
}
