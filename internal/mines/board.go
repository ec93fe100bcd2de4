package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) ValidatePoint(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Index(x, y int) int {
	return y*p.Width + x
}

func (p GameParams) Point(i int) (x, y int) {
	return i % p.Width, i / p.Width
}

// Neighbors returns the flat indices of the up-to-8 cells around i,
// in row-major order.
func (p GameParams) Neighbors(i int) []int {
	x, y := p.Point(i)
	ns := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if p.ValidatePoint(x+dx, y+dy) {
				ns = append(ns, p.Index(x+dx, y+dy))
			}
		}
	}
	return ns
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

// Board couples a fixed ground-truth mine layout with the player's
// knowledge grid. The mine layout is never exposed to callers except
// through neighbour counts on revealed cells and through [Board.MineAt]
// (ground truth, for displays and soundness checks only).
type Board struct {
	GameParams
	mines    []bool
	Cells    Grid
	exploded bool
	revealed int
	flagged  int
}

// NewBoardWithMines builds a board from an explicit mine layout. The
// layout must agree with params.MineCount.
func NewBoardWithMines(params GameParams, mineCells []int) (*Board, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", params.Width, params.Height)
	}
	if len(mineCells) != params.MineCount {
		return nil, fmt.Errorf(
			"mine layout has %d cells, params want %d",
			len(mineCells), params.MineCount,
		)
	}
	mines := make([]bool, params.CellCount())
	for _, i := range mineCells {
		if i < 0 || i >= len(mines) {
			return nil, fmt.Errorf("mine cell %d out of bounds", i)
		}
		if mines[i] {
			return nil, fmt.Errorf("duplicate mine cell %d", i)
		}
		mines[i] = true
	}
	cells := make(Grid, params.CellCount())
	for i := range cells {
		cells[i] = Hidden
	}
	return &Board{GameParams: params, mines: mines, Cells: cells}, nil
}

// MineAt exposes ground truth for a single cell. The solving engine
// must never call this; it exists for post-game displays and tests.
func (b *Board) MineAt(x, y int) bool {
	return b.mines[b.Index(x, y)]
}

func (b *Board) Revealed() int { return b.revealed }
func (b *Board) Flagged() int  { return b.flagged }
func (b *Board) Hidden() int {
	return b.CellCount() - b.revealed - b.flagged - boolToInt(b.exploded)
}

func (b *Board) Lost() bool { return b.exploded }

func (b *Board) Won() bool {
	return !b.exploded && b.revealed == b.CellCount()-b.MineCount
}

func (b *Board) countMinesAround(i int) int {
	n := 0
	for _, j := range b.Neighbors(i) {
		if b.mines[j] {
			n++
		}
	}
	return n
}

// OpenCell reveals a cell. Opening a mine marks it [Exploded] and ends
// the game; opening a zero-count cell floods outward through its
// neighbours, exactly like clicking in the real game. Opening anything
// not currently hidden is a no-op.
func (b *Board) OpenCell(x, y int) CellState {
	i := b.Index(x, y)
	if b.Cells[i] != Hidden {
		return b.Cells[i]
	}
	if b.mines[i] {
		b.Cells[i] = Exploded
		b.exploded = true
		return Exploded
	}

	/*
	 * Walk a to-do list of cells with known-safe contents, opening
	 * them one by one. Every cell that turns out to have no
	 * neighbouring mines enqueues all its covered neighbours.
	 */
	std := &celltodo{
		next: make([]int, len(b.Cells)),
		head: -1, tail: -1,
	}
	b.Cells[i] = todo
	std.add(i)

	for j := std.head; j >= 0; j = std.next[j] {
		c := b.countMinesAround(j)
		b.Cells[j] = CellState(c)
		b.revealed++
		if c == 0 {
			for _, k := range b.Neighbors(j) {
				if b.Cells[k] == Hidden {
					if b.mines[k] {
						panic(AssertionError{"flood reached a mine"})
					}
					b.Cells[k] = todo
					std.add(k)
				}
			}
		}
	}

	return b.Cells[i]
}

// FlagCell marks a hidden cell as a certain mine. Flags are never
// taken back; re-flagging or flagging an open cell is a no-op.
func (b *Board) FlagCell(x, y int) {
	i := b.Index(x, y)
	if b.Cells[i] != Hidden {
		return
	}
	if b.flagged >= b.MineCount {
		panic(AssertionError{"more flags than mines"})
	}
	b.Cells[i] = Flagged
	b.flagged++
}

// RevealMines exposes the remaining mines once the game is over, for
// display purposes.
func (b *Board) RevealMines() {
	if !(b.exploded || b.Won()) {
		return
	}
	for i, mine := range b.mines {
		if mine && b.Cells[i] == Hidden {
			b.Cells[i] = UnflaggedMine
		}
	}
}

// Snapshot is a read-only copy of the observable board state, safe to
// hand to renderers and watchers while the game continues.
type Snapshot struct {
	GameParams
	Cells    Grid `json:"cells"`
	Revealed int  `json:"revealed"`
	Flagged  int  `json:"flagged"`
	Exploded bool `json:"exploded"`
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		GameParams: b.GameParams,
		Cells:      b.Cells.Clone(),
		Revealed:   b.revealed,
		Flagged:    b.flagged,
		Exploded:   b.exploded,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
