package game

// Swipe slides and merges every lane towards d. It reports the score gained
// (the sum of tiles created by merges) and whether any cell changed. An
// unchanged grid means the move is illegal and no tile should be spawned.
func (g *Grid) Swipe(d Direction) (gain int, moved bool) {
	for lane := 0; lane < Side; lane++ {
		edge := 0 // Offsets below edge are settled and can't merge again
		for j := 0; j < Side; j++ {
			c := g.cells[d.index(lane, j)]
			if c == 0 {
				continue
			}

			target := edge
			merged := false
			for k := j - 1; k >= edge; k-- {
				c2 := g.cells[d.index(lane, k)]
				if c2 == 0 {
					continue
				}
				if c2 == c {
					target = k
					merged = true
					edge = k + 1
				} else {
					target = k + 1
				}
				break
			}

			if target == j {
				continue
			}
			g.cells[d.index(lane, j)] = 0
			dst := d.index(lane, target)
			g.cells[dst] += c
			if merged {
				gain += g.cells[dst]
			}
			moved = true
		}
	}
	return gain, moved
}

// CanMove reports whether any direction changes the grid.
func (g *Grid) CanMove() bool {
	for _, d := range Directions {
		probe := g.Clone()
		if _, moved := probe.Swipe(d); moved {
			return true
		}
	}
	return false
}
