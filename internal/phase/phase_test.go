package phase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerAdvancesThroughOrdinaryPathWithoutFinalize(t *testing.T) {
	c := NewController()
	require.Equal(t, Init, c.Current())

	require.Equal(t, Construct, c.Advance())
	require.Equal(t, Repair, c.Advance())
	require.Equal(t, HC, c.Advance())
	require.Equal(t, Metaheuristic, c.Advance())
	// Metaheuristic holds until a finalize request arrives; repeated
	// Advance calls must never fall back into Construct/Repair/HC.
	require.Equal(t, Metaheuristic, c.Advance())
	require.Equal(t, Metaheuristic, c.Advance())
	require.False(t, c.Done())
}

func TestControllerJumpsToFinalOnlyFromMetaheuristic(t *testing.T) {
	c := NewController()
	c.RequestFinalize()

	// a finalize request posted before Metaheuristic has no effect until
	// the controller actually reaches Metaheuristic.
	require.Equal(t, Construct, c.Advance())
	require.True(t, c.FinalizePending())
	require.Equal(t, Repair, c.Advance())
	require.Equal(t, HC, c.Advance())
	require.Equal(t, Metaheuristic, c.Advance())

	require.Equal(t, Final, c.Advance())
	require.False(t, c.FinalizePending())
	require.Equal(t, Done, c.Advance())
	require.True(t, c.Done())
}

func TestControllerNeverReentersAnEarlierPhase(t *testing.T) {
	c := NewController()
	seen := map[Phase]bool{}
	for i := 0; i < 10; i++ {
		p := c.Advance()
		if p == Metaheuristic && seen[Metaheuristic] {
			c.RequestFinalize()
		}
		seen[p] = true
	}
	require.True(t, c.Done())
	// once Final/Done are reached, Construct/Repair/HC must never appear
	// again in the sequence; re-running a few more Advance calls should
	// stay parked at Done.
	for i := 0; i < 3; i++ {
		require.Equal(t, Done, c.Advance())
	}
}

func TestPhaseStringNamesMatchSpecOrdinals(t *testing.T) {
	require.Equal(t, "Construct", Construct.String())
	require.Equal(t, "Final", Final.String())
	require.EqualValues(t, 9999, Final)
	require.EqualValues(t, -1, Init)
}
