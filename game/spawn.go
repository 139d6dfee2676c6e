package game

// Spawn places a 2 (90%) or a 4 (10%) into a uniformly chosen empty cell.
// The grid must have at least one empty cell.
func (g *Grid) Spawn(r Rand) {
	empty := g.CountEmpty()
	if empty == 0 {
		panic("cannot spawn on a full grid")
	}

	k := r.Intn(empty)
	i := 0
	for ; ; i++ {
		if g.cells[i] != 0 {
			continue
		}
		if k == 0 {
			break
		}
		k--
	}

	if r.Float64() < SPAWN_TWO {
		g.cells[i] = 2
	} else {
		g.cells[i] = 4
	}
}
