package searcher

import (
	"twenty48/game"

	"golang.org/x/exp/rand"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Full grid without any equal neighbours
var terminalGrid = game.NewGrid([game.Cells]int{
	2, 4, 2, 4,
	4, 2, 4, 2,
	2, 4, 2, 4,
	4, 2, 4, 2,
})

// Full grid whose only equal neighbours are the first two cells of row 0,
// so only Left and Right are legal
var horizontalGrid = game.NewGrid([game.Cells]int{
	2, 2, 4, 8,
	4, 8, 16, 32,
	8, 16, 32, 64,
	16, 32, 64, 128,
})

func randomGrid(r *rand.Rand) game.Grid {
	var cells [game.Cells]int
	for i := range cells {
		if r.Intn(4) == 0 {
			continue
		}
		cells[i] = 1 << (1 + r.Intn(6))
	}
	return game.NewGrid(cells)
}
