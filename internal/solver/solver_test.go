package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"timetabling-UDP/internal/criteria"
	"timetabling-UDP/internal/model"
)

func buildModel(t *testing.T, nrExams, nrRooms, nrPeriods int) *model.Model {
	t.Helper()
	m := model.NewModel(model.DefaultConfig())
	for i := 0; i < nrPeriods; i++ {
		m.Periods[i] = model.NewPeriod(i, i, 0, (9+i)*60, 60, 0)
	}
	for i := 0; i < nrRooms; i++ {
		m.Rooms[i] = model.NewRoom(i, "R", 30, 0)
	}

	var ap []model.PeriodPreference
	for i := 0; i < nrPeriods; i++ {
		ap = append(ap, model.PeriodPreference{PeriodID: i})
	}
	for i := 0; i < nrExams; i++ {
		m.Exams[i] = &model.Exam{
			ID:             i,
			StudentCount:   10,
			StudentIDs:     []int{i},
			AllowedPeriods: ap,
		}
	}
	require.NoError(t, m.Finalize())

	reg := criteria.NewRegistry(m)
	built, unknown := reg.Build(map[string]float64{
		"PeriodPenalty":         1,
		"PeriodIndexPenalty":    1,
		"RoomPenalty":           1,
		"StudentDirectConflicts": 10,
	})
	require.Empty(t, unknown)
	m.Criteria = built
	return m
}

type countingListener struct {
	bestSaved, updated int
}

func (c *countingListener) BestSaved(s *Solution)       { c.bestSaved++ }
func (c *countingListener) BestRestored(s *Solution)     {}
func (c *countingListener) BestCleared(s *Solution)      {}
func (c *countingListener) SolutionUpdated(s *Solution)  { c.updated++ }

func TestSingleThreadedRunnerPlacesEveryExamGivenEnoughCapacity(t *testing.T) {
	m := buildModel(t, 4, 4, 2)
	listeners := &Listeners{}
	counter := &countingListener{}
	listeners.Add(counter)

	runner := NewSingleThreadedRunner()
	sol, err := runner.Run(context.Background(), RunConfig{
		Model:      m,
		Terminate:  MaxIterations{Limit: 50},
		MasterSeed: 7,
		Listeners:  listeners,
	})

	require.NoError(t, err)
	require.NotNil(t, sol)
	require.Equal(t, 0, sol.Assignment.NrUnassigned())
	require.True(t, sol.HasBest())
	require.Greater(t, counter.bestSaved, 0)
}

func TestParallelRunnerPromotesTheBetterWorker(t *testing.T) {
	m := buildModel(t, 4, 4, 2)
	runner := NewParallelRunner(3)
	sol, err := runner.Run(context.Background(), RunConfig{
		Model:      m,
		Terminate:  MaxIterations{Limit: 50},
		MasterSeed: 11,
	})

	require.NoError(t, err)
	require.NotNil(t, sol)
	require.Equal(t, 0, sol.Assignment.NrUnassigned())
}

func TestRunRespectsContextCancellation(t *testing.T) {
	m := buildModel(t, 4, 4, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewSingleThreadedRunner()
	sol, err := runner.Run(ctx, RunConfig{
		Model:      m,
		Terminate:  MaxIterations{Limit: 50},
		MasterSeed: 3,
	})

	require.Error(t, err)
	require.NotNil(t, sol)
}

func TestTerminationConditions(t *testing.T) {
	require.False(t, MaxIterations{Limit: 0}.CanContinue(&Solution{Iteration: 0}))
	require.True(t, MaxIterations{Limit: 5}.CanContinue(&Solution{Iteration: 0}))
	require.False(t, TimeOut{Limit: time.Millisecond}.CanContinue(&Solution{Elapsed: time.Second}))

	any := AnyOf{Conditions: []TerminationCondition{
		MaxIterations{Limit: 5},
		TimeOut{Limit: time.Second},
	}}
	require.True(t, any.CanContinue(&Solution{Iteration: 1, Elapsed: time.Millisecond}))
	require.False(t, any.CanContinue(&Solution{Iteration: 10, Elapsed: time.Millisecond}))
}

func TestRequestFinalizeEndsTheMetaheuristicPhaseWithOneStrictSweep(t *testing.T) {
	m := buildModel(t, 3, 3, 2)

	runner := NewSingleThreadedRunner()
	sol, err := runner.Run(context.Background(), RunConfig{
		Model:      m,
		Terminate:  MaxIterations{Limit: 1}, // forces finalize almost immediately
		MasterSeed: 1,
	})

	require.NoError(t, err)
	require.NotNil(t, sol)
}
