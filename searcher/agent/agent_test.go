package agent

import (
	"math"
	"testing"

	"twenty48/game"
	"twenty48/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var terminalGrid = game.NewGrid([game.Cells]int{
	2, 4, 2, 4,
	4, 2, 4, 2,
	2, 4, 2, 4,
	4, 2, 4, 2,
})

var horizontalGrid = game.NewGrid([game.Cells]int{
	2, 2, 4, 8,
	4, 8, 16, 32,
	8, 16, 32, 64,
	16, 32, 64, 128,
})

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNew(t *testing.T) {
	evaluator := searcher.NewEvaluator(searcher.WithTrials(2))

	for _, name := range []string{"mc", "sample", "random"} {
		a, err := New(name, evaluator, 1.0)
		require.NoError(t, err)
		require.Equal(t, name, a.Name())
	}

	_, err := New("greedy", evaluator, 1.0)
	require.Error(t, err)
}

func TestAgentsFindMove(t *testing.T) {
	evaluator := searcher.NewEvaluator(searcher.WithTrials(4))
	agents := []Agent{
		NewEvaluationAgent(evaluator),
		NewTrainingAgent(evaluator, 1.0),
		NewRandomAgent(),
	}

	for _, a := range agents {
		t.Run(a.Name()+" agent reports terminal grids", func(t *testing.T) {
			_, found, _ := a.FindMove(terminalGrid, newRand(1))
			require.False(t, found)
		})

		t.Run(a.Name()+" agent only plays legal directions", func(t *testing.T) {
			r := newRand(2)
			for i := 0; i < 20; i++ {
				d, found, _ := a.FindMove(horizontalGrid, r)
				require.True(t, found)
				require.Contains(t, []game.Direction{game.Left, game.Right}, d)
			}
		})
	}

	t.Run("evaluation agent matches the evaluator", func(t *testing.T) {
		want, wantFound := evaluator.BestMove(horizontalGrid, newRand(3))
		got, gotFound, metric := NewEvaluationAgent(evaluator).FindMove(horizontalGrid, newRand(3))

		require.Equal(t, wantFound, gotFound)
		require.Equal(t, want, got)
		require.Zero(t, metric.Playouts, "Default evaluator collects no metrics")
	})
}

func TestAdjustTemperature(t *testing.T) {
	scores := [4]searcher.Score{
		{Direction: game.Up},
		{Direction: game.Down, Legal: true, Trials: 1, Sum: 9},
		{Direction: game.Left, Legal: true, Trials: 1, Sum: 3},
		{Direction: game.Right},
	}

	t.Run("normalizes legal directions", func(t *testing.T) {
		policy := adjustTemperature(scores, 1.0)

		require.Zero(t, policy[0])
		require.Zero(t, policy[3])
		require.InDelta(t, 1.0, policy[1]+policy[2], 1e-9)
		require.InDelta(t, 10.0/14.0, policy[1], 1e-9)
	})

	t.Run("lower temperature sharpens the policy", func(t *testing.T) {
		hot := adjustTemperature(scores, 2.0)
		cold := adjustTemperature(scores, 0.5)

		require.Greater(t, cold[1], hot[1])
	})

	t.Run("tiny temperature on large means picks the best direction", func(t *testing.T) {
		large := [4]searcher.Score{
			{Direction: game.Up, Legal: true, Trials: 1, Sum: 30000},
			{Direction: game.Down},
			{Direction: game.Left, Legal: true, Trials: 1, Sum: 20000},
			{Direction: game.Right},
		}
		policy := adjustTemperature(large, 0.01)

		for _, p := range policy {
			require.False(t, math.IsNaN(p))
		}
		require.InDelta(t, 1.0, policy[0], 1e-9)
		require.InDelta(t, 0.0, policy[2], 1e-9)

		r := newRand(4)
		for i := 0; i < 100; i++ {
			require.Equal(t, game.Up, sample(policy, r.Float64()))
		}
	})

	t.Run("sampling walks the cumulative distribution", func(t *testing.T) {
		policy := adjustTemperature(scores, 1.0)

		require.Equal(t, game.Down, sample(policy, 0))
		require.Equal(t, game.Left, sample(policy, 0.9))
		require.Equal(t, game.Left, sample(policy, 1.0), "Rounding falls back to the last legal direction")
	})
}
