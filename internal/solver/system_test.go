package solver

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	mines.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func TestBuildSystem(t *testing.T) {
	t.Parallel()

	// 3x2 board, mine in the bottom-right corner (cell 5):
	//
	// 	0 1 .     opened (0,0), flood stops at the 1s
	// 	0 1 .     hidden cells left: 2 and 5
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 3, Height: 2, MineCount: 1}, []int{5},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)
	require.Equal(t, 4, b.Revealed())

	sys := BuildSystem(b)
	require.Equal(t, []int{2, 5}, sys.Cells)
	require.Equal(t, 0, sys.Var(2))
	require.Equal(t, 1, sys.Var(5))
	require.Equal(t, -1, sys.Var(0))

	// global budget + one constraint per numbered cell that still
	// has hidden neighbours; (0,0) and (0,1) are fully explained
	// and must emit nothing
	require.Len(t, sys.Constraints, 3)
	require.Equal(t, Constraint{Vars: []int{0, 1}, Sum: 1}, sys.Constraints[0])
	for _, con := range sys.Constraints[1:] {
		require.Equal(t, []int{0, 1}, con.Vars)
		require.Equal(t, 1.0, con.Sum)
	}
}

func TestBuildSystemFlaggedNeighbours(t *testing.T) {
	t.Parallel()

	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 3, Height: 2, MineCount: 1}, []int{5},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)
	b.FlagCell(2, 1)

	// the flag fixes cell 5 at 1: no variable for it, and every
	// right-hand side it touched drops by one
	sys := BuildSystem(b)
	require.Equal(t, []int{2}, sys.Cells)
	require.Len(t, sys.Constraints, 3)
	for _, con := range sys.Constraints {
		require.Equal(t, []int{0}, con.Vars)
		require.Equal(t, 0.0, con.Sum)
	}
}

func TestBuildSystemEmpty(t *testing.T) {
	t.Parallel()

	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 2, Height: 2, MineCount: 0}, nil,
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)
	require.True(t, b.Won())

	sys := BuildSystem(b)
	require.Equal(t, 0, sys.NumVars())
	require.Empty(t, sys.Constraints)
}

func TestBuildSystemIdempotent(t *testing.T) {
	t.Parallel()

	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 3, Height: 2, MineCount: 1}, []int{5},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)

	first := BuildSystem(b)
	second := BuildSystem(b)
	require.Equal(t, first, second)

	// and the solver agrees with itself across the two builds
	for v := range first.NumVars() {
		for _, dir := range []Direction{Minimize, Maximize} {
			got, err := Simplex{}.Solve(first, v, dir)
			require.NoError(t, err)
			again, err := Simplex{}.Solve(second, v, dir)
			require.NoError(t, err)
			require.InDelta(t, got, again, Epsilon)
		}
	}
}
