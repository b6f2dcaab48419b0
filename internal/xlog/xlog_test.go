package xlog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPhaseTransitionEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)

	PhaseTransition(log, "Repair", 42, -3.5)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Repair", entry["phase"])
	require.EqualValues(t, 42, entry["iter"])
	require.InDelta(t, -3.5, entry["value"].(float64), 1e-9)
}

func TestRunSummaryEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)

	RunSummary(log, "run-123", 1000, -12.0, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "run-123", entry["run_id"])
	require.EqualValues(t, 1000, entry["iter"])
	require.EqualValues(t, 2, entry["nr_unassigned"])
}
