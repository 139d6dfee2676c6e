package game

// Side is the number of rows and columns of the grid.
const Side = 4

// Cells is the number of cells in the grid.
const Cells = Side * Side

// Largest tile reachable on a 4x4 grid (4 spawned into the last cell of a
// full staircase)
const MAX_TILE = 1 << 17

// Spawn probability of the smaller tile, the rest spawn as a 4
const SPAWN_TWO = 0.9

// Rand is the random source threaded through every operation that needs
// randomness. Both golang.org/x/exp/rand.Rand and math/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
	Uint64() uint64
}
