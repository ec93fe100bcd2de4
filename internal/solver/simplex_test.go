package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solveBoth(t *testing.T, sys *System, v int) (lower, upper float64) {
	t.Helper()
	lower, err := Simplex{}.Solve(sys, v, Minimize)
	require.NoError(t, err)
	upper, err = Simplex{}.Solve(sys, v, Maximize)
	require.NoError(t, err)
	return lower, upper
}

func TestSimplexForcedVariable(t *testing.T) {
	t.Parallel()

	sys := &System{
		Cells:       []int{0},
		Constraints: []Constraint{{Vars: []int{0}, Sum: 1}},
	}
	lower, upper := solveBoth(t, sys, 0)
	require.InDelta(t, 1, lower, Epsilon)
	require.InDelta(t, 1, upper, Epsilon)
}

func TestSimplexFreeWithinBudget(t *testing.T) {
	t.Parallel()

	sys := &System{
		Cells:       []int{0, 1},
		Constraints: []Constraint{{Vars: []int{0, 1}, Sum: 1}},
	}
	for v := range 2 {
		lower, upper := solveBoth(t, sys, v)
		require.InDelta(t, 0, lower, Epsilon)
		require.InDelta(t, 1, upper, Epsilon)
	}
}

func TestSimplexChainPropagation(t *testing.T) {
	t.Parallel()

	// x0+x1 = 1, x1+x2 = 1, x0+x1+x2 = 2 forces x0 = x2 = 1, x1 = 0
	sys := &System{
		Cells: []int{0, 1, 2},
		Constraints: []Constraint{
			{Vars: []int{0, 1, 2}, Sum: 2},
			{Vars: []int{0, 1}, Sum: 1},
			{Vars: []int{1, 2}, Sum: 1},
		},
	}
	for v, want := range []float64{1, 0, 1} {
		lower, upper := solveBoth(t, sys, v)
		require.InDelta(t, want, lower, Epsilon)
		require.InDelta(t, want, upper, Epsilon)
	}
}

func TestSimplexRedundantRows(t *testing.T) {
	t.Parallel()

	// the same equality three times over must not upset the solver
	// (the builder emits dependent rows routinely)
	con := Constraint{Vars: []int{0, 1}, Sum: 1}
	sys := &System{
		Cells:       []int{0, 1},
		Constraints: []Constraint{con, con, con},
	}
	lower, upper := solveBoth(t, sys, 0)
	require.InDelta(t, 0, lower, Epsilon)
	require.InDelta(t, 1, upper, Epsilon)
}

func TestSimplexInfeasible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sys  *System
	}{
		{
			name: "sum exceeds box",
			sys: &System{
				Cells:       []int{0},
				Constraints: []Constraint{{Vars: []int{0}, Sum: 2}},
			},
		},
		{
			name: "negative sum",
			sys: &System{
				Cells:       []int{0, 1},
				Constraints: []Constraint{{Vars: []int{0, 1}, Sum: -1}},
			},
		},
		{
			name: "contradicting rows",
			sys: &System{
				Cells: []int{0, 1},
				Constraints: []Constraint{
					{Vars: []int{0, 1}, Sum: 1},
					{Vars: []int{0, 1}, Sum: 2},
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := Simplex{}.Solve(test.sys, 0, Minimize)
			require.ErrorIs(t, err, ErrInfeasible)
		})
	}
}

func TestSimplexTargetOutOfRange(t *testing.T) {
	t.Parallel()

	sys := &System{
		Cells:       []int{0},
		Constraints: []Constraint{{Vars: []int{0}, Sum: 1}},
	}
	_, err := Simplex{}.Solve(sys, 1, Minimize)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInfeasible)
}
