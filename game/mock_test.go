package game

// scriptedRand replays fixed draws so spawn placement can be asserted.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted draw out of range")
	}
	return v
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

func (s *scriptedRand) Uint64() uint64 { return 0 }

func rowGrid(row [Side]int) Grid {
	var g Grid
	copy(g.cells[:Side], row[:])
	return g
}

func firstRow(g Grid) [Side]int {
	var row [Side]int
	copy(row[:], g.cells[:Side])
	return row
}

func tileCounts(g Grid) map[int]int {
	counts := map[int]int{}
	for _, c := range g.cells {
		if c != 0 {
			counts[c]++
		}
	}
	return counts
}

// mergedTiles lists the tiles produced by swiping g in direction d: per lane,
// the occupied cells from the leading edge merge pairwise when equal.
func mergedTiles(g Grid, d Direction) []int {
	var merged []int
	for lane := 0; lane < Side; lane++ {
		var tiles []int
		for off := 0; off < Side; off++ {
			if c := g.cells[d.index(lane, off)]; c != 0 {
				tiles = append(tiles, c)
			}
		}
		for i := 0; i+1 < len(tiles); i++ {
			if tiles[i] == tiles[i+1] {
				merged = append(merged, 2*tiles[i])
				i++
			}
		}
	}
	return merged
}

func tileStats(g Grid) (sum, count int) {
	for _, c := range g.cells {
		sum += c
		if c != 0 {
			count++
		}
	}
	return sum, count
}
