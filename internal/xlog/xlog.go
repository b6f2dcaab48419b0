// Package xlog wraps a single process-wide zerolog.Logger: constructed
// once in cmd/solver, threaded through the solver, one structured event
// per phase transition and periodic move-acceptance summary rather than
// fmt.Println progress banners. Fields are attached per log call rather
// than formatted into strings.
package xlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger, writing to w (os.Stdout in
// production, a bytes.Buffer in tests) with RFC3339 timestamps and the
// given minimum level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewDefault builds the standard stdout logger at info level, the one
// cmd/solver constructs unless a -verbose flag raises it to debug.
func NewDefault() zerolog.Logger {
	return New(os.Stdout, zerolog.InfoLevel)
}

// PhaseTransition logs a structured phase-boundary event: phase entered,
// iteration count, and current total value.
func PhaseTransition(log zerolog.Logger, phaseName string, iter int, value float64) {
	log.Info().
		Str("phase", phaseName).
		Int("iter", iter).
		Float64("value", value).
		Msg("phase transition")
}

// RunSummary logs the one-line structured summary emitted at shutdown,
// alongside (not instead of) the tablewriter console table.
func RunSummary(log zerolog.Logger, runID string, iter int, bestValue float64, nrUnassigned int) {
	log.Info().
		Str("run_id", runID).
		Int("iter", iter).
		Float64("best_value", bestValue).
		Int("nr_unassigned", nrUnassigned).
		Msg("run complete")
}
