// Command solver runs one examination-timetabling solve: load a problem
// file, drive construction/repair/hill-climbing/metaheuristic phases to a
// termination condition, and save the best assignment found. One main
// wiring loader -> solver -> writer, flag-driven via cobra.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"timetabling-UDP/internal/config"
	"timetabling-UDP/internal/criteria"
	"timetabling-UDP/internal/exporter"
	"timetabling-UDP/internal/ioadapter"
	"timetabling-UDP/internal/model"
	"timetabling-UDP/internal/report"
	"timetabling-UDP/internal/solver"
	"timetabling-UDP/internal/xlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solver <config> [<input>] [<output>]",
		Short: "Solve an examination timetable instance",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	return cmd
}

func run(args []string, verbose bool) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := xlog.New(os.Stdout, level)

	runID := uuid.NewString()

	cfg, err := config.Load(args[0])
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("config load failed")
		return err
	}
	if len(args) >= 2 {
		cfg.General.Input = args[1]
	}
	if len(args) >= 3 {
		cfg.General.OutputFile = args[2]
	}

	log.Info().Str("run_id", runID).Int64("seed", cfg.General.Seed).Int("nr_solvers", cfg.Parallel.NrSolvers).Msg("run starting")

	m := model.NewModel(model.Config{
		MaxRoomSplit:  2,
		AllowSplit:    true,
		LargeExamSize: 200,
	})

	inFile, err := os.Open(cfg.General.Input)
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("opening input file")
		return err
	}
	defer inFile.Close()

	loader := ioadapter.NewXMLProblemLoader()
	if err := loader.Load(inFile, m); err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("loading problem")
		return err
	}

	reg := criteria.NewRegistry(m)
	built, unknown := reg.Build(cfg.Weights)
	for _, name := range unknown {
		log.Warn().Str("run_id", runID).Str("criterion", name).Msg("unknown criterion weight, ignored")
	}
	m.Criteria = built

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Str("run_id", runID).Msg("shutdown signal received")
		cancel()
	}()

	terminate := buildTermination(cfg)

	var runner solver.Runner
	if cfg.Parallel.NrSolvers > 1 {
		runner = solver.NewParallelRunner(cfg.Parallel.NrSolvers)
	} else {
		runner = solver.NewSingleThreadedRunner()
	}

	listeners := &solver.Listeners{}
	listeners.Add(phaseLoggingListener{log: log, runID: runID})

	sol, err := runner.Run(ctx, solver.RunConfig{
		Model:      m,
		Terminate:  terminate,
		MasterSeed: cfg.General.Seed,
		Listeners:  listeners,
	})
	if sol == nil {
		// No solution at all means the run aborted before a best could
		// ever be captured (e.g. the parallel runner's errgroup failed
		// before any worker finished) - fatal. An Interrupted error with
		// a non-nil Solution is the recovered shutdown path: the solver
		// already saved its best before returning, so we fall through
		// and write it out normally.
		log.Error().Str("run_id", runID).Err(err).Msg("run produced no solution")
		return err
	}
	if err != nil {
		log.Warn().Str("run_id", runID).Err(err).Msg("run ended early, saving best found so far")
	}

	best := sol.Best
	if best == nil {
		best = sol.Assignment
	}

	if cfg.General.OutputFile != "" {
		outFile, werr := os.Create(cfg.General.OutputFile)
		if werr != nil {
			log.Error().Str("run_id", runID).Err(werr).Msg("creating output file")
			return werr
		}
		defer outFile.Close()

		writer := ioadapter.NewXMLSolutionWriter()
		if werr := writer.Save(outFile, m, best); werr != nil {
			log.Error().Str("run_id", runID).Err(werr).Msg("saving solution")
			return werr
		}
	}

	if cfg.General.Output != "" {
		if jerr := exporter.Export(m, best, cfg.General.Output); jerr != nil {
			log.Warn().Str("run_id", runID).Err(jerr).Msg("json export failed")
		}
	}

	if cfg.General.Reports {
		for _, rep := range report.Default() {
			table, rerr := rep.Generate(m, best)
			if rerr != nil {
				log.Warn().Str("run_id", runID).Str("report", rep.Name()).Err(rerr).Msg("report generation failed")
				continue
			}
			path := fmt.Sprintf("%s-%s.csv", rep.Name(), runID)
			if rerr := rep.Save(table, path); rerr != nil {
				log.Warn().Str("run_id", runID).Str("report", rep.Name()).Err(rerr).Msg("report save failed")
			}
		}
	}

	report.PrintSummary(os.Stdout, m, best, sol.BestValue)
	xlog.RunSummary(log, runID, sol.Iteration, sol.BestValue, best.NrUnassigned())
	return nil
}

func buildTermination(cfg *config.Config) solver.TerminationCondition {
	var conditions []solver.TerminationCondition
	if cfg.Termination.StopWhenComplete {
		conditions = append(conditions, solver.StopWhenComplete{})
	}
	if cfg.Termination.MaxIters > 0 {
		conditions = append(conditions, solver.MaxIterations{Limit: cfg.Termination.MaxIters})
	}
	if cfg.Termination.TimeOutSeconds > 0 {
		conditions = append(conditions, solver.TimeOut{Limit: time.Duration(cfg.Termination.TimeOutSeconds) * time.Second})
	}
	if len(conditions) == 0 {
		return solver.MaxIterations{Limit: 100000}
	}
	return solver.AnyOf{Conditions: conditions}
}

// phaseLoggingListener emits one structured log line per best-saved
// event, a periodic (not per-iteration) summary in place of a console
// banner.
type phaseLoggingListener struct {
	log   zerolog.Logger
	runID string
}

func (l phaseLoggingListener) BestSaved(s *solver.Solution) {
	l.log.Info().Str("run_id", l.runID).Int("iter", s.Iteration).Float64("value", s.BestValue).Msg("best saved")
}
func (phaseLoggingListener) BestRestored(s *solver.Solution)    {}
func (phaseLoggingListener) BestCleared(s *solver.Solution)     {}
func (phaseLoggingListener) SolutionUpdated(s *solver.Solution) {}
