package game

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in evaluation order.
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// index maps a lane and an offset from the lane's leading edge to a linear
// cell index. Offset 0 is the cell tiles slide towards.
func (d Direction) index(lane, offset int) int {
	switch d {
	case Left:
		return lane*Side + offset
	case Right:
		return lane*Side + Side - 1 - offset
	case Up:
		return offset*Side + lane
	case Down:
		return (Side-1-offset)*Side + lane
	}
	panic(fmt.Sprintf("invalid direction %d", int(d)))
}
