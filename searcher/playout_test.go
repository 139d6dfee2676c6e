package searcher

import (
	"testing"

	"twenty48/game"

	"github.com/stretchr/testify/require"
)

func TestPlayout(t *testing.T) {
	t.Run("terminal grid scores nothing", func(t *testing.T) {
		score, moves := Playout(terminalGrid, newRand(1))

		require.Zero(t, score)
		require.Zero(t, moves)
	})

	t.Run("plays until no move is left", func(t *testing.T) {
		var g game.Grid
		r := newRand(2)
		g.Spawn(r)
		g.Spawn(r)

		score, moves := playout(&g, r)

		require.False(t, g.CanMove(), "Playout should end on a terminal grid")
		require.Zero(t, g.CountEmpty(), "Terminal grids are full")
		require.True(t, g.Valid())
		require.Positive(t, moves)
		require.Positive(t, score, "A full terminal grid requires merges on the way")
	})

	t.Run("does not modify the caller's grid", func(t *testing.T) {
		g := game.NewGrid([game.Cells]int{2, 2})
		before := g.Clone()

		Playout(g, newRand(3))

		require.Equal(t, before, g)
	})

	t.Run("same seed gives the same playout", func(t *testing.T) {
		g := game.NewGrid([game.Cells]int{2, 0, 4, 0, 0, 2})

		score1, moves1 := Playout(g, newRand(9))
		score2, moves2 := Playout(g, newRand(9))

		require.Equal(t, score1, score2)
		require.Equal(t, moves1, moves2)
	})
}

func TestTrial(t *testing.T) {
	t.Run("spawns before playing out", func(t *testing.T) {
		g := game.NewGrid([game.Cells]int{2})

		_, moves := trial(g, newRand(4))

		require.Positive(t, moves)
	})
}
