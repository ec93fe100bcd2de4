// Package solver plays a minesweeper board autonomously. Board
// knowledge is translated into a system of linear equalities over one
// [0,1] variable per covered cell; minimizing and maximizing each
// variable over the feasible polytope yields certified bounds on its
// mine value, and a simple policy turns those bounds into moves.
package solver

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// System is a linear-equality view of everything the board currently
// tells us about its covered cells.
//
// Each hidden (unflagged, unopened) cell owns one variable whose value
// is the LP-feasible fractional "mine mass" of that cell. Flagged
// cells are certain mines: they carry no variable and are instead
// subtracted from every right-hand side they touch.
type System struct {
	// Cells maps variable columns to flat board indices, in
	// row-major board order.
	Cells       []int
	Constraints []Constraint

	index map[int]int // board index -> variable column
}

// Constraint requires the variables in Vars to add up to exactly Sum.
type Constraint struct {
	Vars []int
	Sum  float64
}

func (s *System) NumVars() int { return len(s.Cells) }

// Var returns the variable column for a board cell, or -1 when the
// cell carries no variable.
func (s *System) Var(cell int) int {
	if v, ok := s.index[cell]; ok {
		return v
	}
	return -1
}

func (s *System) String() string {
	return fmt.Sprintf("%d vars, %d constraints", len(s.Cells), len(s.Constraints))
}

// BuildSystem derives the full constraint system from a board. It is a
// pure reader: two calls on an unchanged board yield equal systems.
//
// Constraints are, in order: the global budget (all variables sum to
// the number of still-unflagged mines), then one equality per open
// numbered cell that still has at least one hidden neighbour. Open
// cells whose neighbourhood is fully resolved explain nothing new and
// emit no constraint. A board with no hidden cells yields an empty
// system.
func BuildSystem(b *mines.Board) *System {
	sys := &System{index: make(map[int]int)}

	for i, s := range b.Cells {
		if s == mines.Hidden {
			sys.index[i] = len(sys.Cells)
			sys.Cells = append(sys.Cells, i)
		}
	}
	if len(sys.Cells) == 0 {
		return sys
	}

	budget := Constraint{
		Vars: make([]int, len(sys.Cells)),
		Sum:  float64(b.MineCount - b.Flagged()),
	}
	for v := range budget.Vars {
		budget.Vars[v] = v
	}
	sys.Constraints = append(sys.Constraints, budget)

	for i, s := range b.Cells {
		if !s.Revealed() {
			continue
		}
		var (
			vars    []int
			flagged int
		)
		for _, j := range b.Neighbors(i) {
			switch b.Cells[j] {
			case mines.Hidden:
				vars = append(vars, sys.index[j])
			case mines.Flagged:
				flagged++
			}
		}
		if len(vars) == 0 {
			continue
		}
		sys.Constraints = append(sys.Constraints, Constraint{
			Vars: vars,
			Sum:  float64(int(s) - flagged),
		})
	}

	return sys
}
