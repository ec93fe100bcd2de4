package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	todo          CellState = -10 // internal to the reveal flood
	Hidden        CellState = -2
	Flagged       CellState = -1
	Exploded      CellState = 64
	UnflaggedMine CellState = 67
	/*
	 * Each item in a grid is one of the following values:
	 *
	 * 	- 0 to 8 mean the cell is open and has a surrounding mine
	 * 	  count.
	 *
	 *  - -1 means the cell is flagged as a certain mine.
	 *
	 *  - -2 means the cell is covered and unknown.
	 *
	 * 	- 64 means the cell had a mine revealed in it, ending the
	 * 	  game.
	 *
	 * 	- 67 means the cell holds a mine that was exposed (not hit)
	 * 	  after the game ended.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return " "
	case s == Flagged:
		return "*"
	case s == UnflaggedMine:
		return "x"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Revealed reports whether the state is an open non-mine cell
// carrying a neighbour count.
func (s CellState) Revealed() bool {
	return 0 <= s && s <= 8
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	copy(c, g)
	return c
}
