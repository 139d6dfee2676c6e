package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is the 4x4 board, stored row-major. The zero value is an empty grid
// and assignment copies it, so a Grid never shares cells with another.
type Grid struct {
	cells [Cells]int
}

func NewGrid(cells [Cells]int) Grid {
	return Grid{cells: cells}
}

func (g *Grid) Get(row, col int) int {
	return g.cells[offset(row, col)]
}

// Set overwrites a cell. Callers keep the power-of-two invariant.
func (g *Grid) Set(row, col, value int) {
	g.cells[offset(row, col)] = value
}

func (g Grid) Clone() Grid {
	return g
}

func (g *Grid) Cells() [Cells]int {
	return g.cells
}

func (g *Grid) CountEmpty() int {
	count := 0
	for _, c := range g.cells {
		if c == 0 {
			count++
		}
	}
	return count
}

func (g *Grid) MaxTile() int {
	largest := 0
	for _, c := range g.cells {
		if c > largest {
			largest = c
		}
	}
	return largest
}

// Valid reports whether every cell is empty or a power of two between 2 and
// MAX_TILE.
func (g Grid) Valid() bool {
	for _, c := range g.cells {
		if c != 0 && (c < 2 || c > MAX_TILE || c&(c-1) != 0) {
			return false
		}
	}
	return true
}

func (g Grid) String() string {
	var sb strings.Builder
	for row := 0; row < Side; row++ {
		for col := 0; col < Side; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.cells[row*Side+col]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func offset(row, col int) int {
	if row < 0 || row >= Side || col < 0 || col >= Side {
		panic(fmt.Sprintf("cell (%d, %d) out of range", row, col))
	}
	return row*Side + col
}
