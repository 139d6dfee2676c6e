package searcher

import "twenty48/game"

// Playout continues the game from g with an uninformed random player: each
// turn it tries the four directions in a freshly shuffled order and plays the
// first legal one. It stops when no direction moves and returns the summed
// gain and the number of moves played. g is copied, the caller's grid is
// never touched.
func Playout(g game.Grid, r game.Rand) (score, moves int) {
	return playout(&g, r)
}

func playout(g *game.Grid, r game.Rand) (score, moves int) {
	order := game.Directions
	for {
		r.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		gain, moved := 0, false
		for _, d := range order {
			if gain, moved = g.Swipe(d); moved {
				break
			}
		}
		if !moved { // Terminal grid
			return score, moves
		}

		score += gain
		moves++
		if g.CountEmpty() > 0 {
			g.Spawn(r)
		}
	}
}

// trial spawns the tile that follows a committed move, then plays out.
func trial(g game.Grid, r game.Rand) (score, moves int) {
	if g.CountEmpty() > 0 {
		g.Spawn(r)
	}
	return playout(&g, r)
}
