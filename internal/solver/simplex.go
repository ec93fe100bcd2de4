package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type Direction int8

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "max"
	}
	return "min"
}

// ErrInfeasible reports that a system admits no assignment at all. On
// a consistently tracked board this can only mean a modeling bug, so
// callers treat it as a defect, never as a game outcome.
var ErrInfeasible = errors.New("infeasible system")

// LPSolver finds the optimal value of a single variable over the
// feasible region of a system, subject to every declared equality and
// to 0 <= v <= 1 for every variable. Implementations must return
// [ErrInfeasible] (possibly wrapped) for an inconsistent system and
// any other error for a numeric failure.
type LPSolver interface {
	Solve(sys *System, target int, dir Direction) (float64, error)
}

// Simplex solves via gonum's dense simplex method.
//
// The method wants standard form (Ax = b, x >= 0, full-row-rank A), so
// every [0,1] box becomes an explicit slack row x + s = 1, and the
// equality rows are Gauss-reduced first: the builder routinely emits
// linearly dependent rows (the global budget often equals a sum of
// local counts late in a game) which would otherwise leave the solver
// with a singular basis.
type Simplex struct{}

var _ LPSolver = Simplex{}

func (Simplex) Solve(sys *System, target int, dir Direction) (float64, error) {
	n := sys.NumVars()
	if target < 0 || target >= n {
		return 0, fmt.Errorf("target variable %d out of range [0,%d)", target, n)
	}

	rows, rhs := denseRows(sys)
	rows, rhs, err := reduceRows(rows, rhs)
	if err != nil {
		return 0, err
	}

	m := len(rows)
	a := mat.NewDense(m+n, 2*n, nil)
	b := make([]float64, m+n)
	for r, row := range rows {
		for c, coef := range row {
			a.Set(r, c, coef)
		}
		b[r] = rhs[r]
	}
	for v := range n {
		a.Set(m+v, v, 1)
		a.Set(m+v, n+v, 1)
		b[m+v] = 1
	}

	c := make([]float64, 2*n)
	if dir == Maximize {
		c[target] = -1
	} else {
		c[target] = 1
	}

	opt, _, err := lp.Simplex(c, a, b, 0, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return 0, fmt.Errorf("simplex (%s x%d): %w", dir, target, ErrInfeasible)
	case err != nil:
		return 0, fmt.Errorf("simplex (%s x%d): %w", dir, target, err)
	}
	if dir == Maximize {
		opt = -opt
	}
	return opt, nil
}

func denseRows(sys *System) ([][]float64, []float64) {
	n := sys.NumVars()
	rows := make([][]float64, len(sys.Constraints))
	rhs := make([]float64, len(sys.Constraints))
	for i, con := range sys.Constraints {
		rows[i] = make([]float64, n)
		for _, v := range con.Vars {
			rows[i][v] = 1
		}
		rhs[i] = con.Sum
	}
	return rows, rhs
}

// reduceRows runs Gaussian elimination over the equality rows,
// dropping rows the others already imply. A row that reduces to
// 0 = c with c != 0 means the recorded counts contradict each other,
// reported as [ErrInfeasible] without bothering the solver.
func reduceRows(rows [][]float64, rhs []float64) ([][]float64, []float64, error) {
	const tol = 1e-9

	m := len(rows)
	n := 0
	if m > 0 {
		n = len(rows[0])
	}

	r := 0
	for c := 0; c < n && r < m; c++ {
		p := -1
		for i := r; i < m; i++ {
			if math.Abs(rows[i][c]) > tol &&
				(p < 0 || math.Abs(rows[i][c]) > math.Abs(rows[p][c])) {
				p = i
			}
		}
		if p < 0 {
			continue
		}
		rows[r], rows[p] = rows[p], rows[r]
		rhs[r], rhs[p] = rhs[p], rhs[r]
		for i := r + 1; i < m; i++ {
			if math.Abs(rows[i][c]) <= tol {
				continue
			}
			f := rows[i][c] / rows[r][c]
			for j := c; j < n; j++ {
				rows[i][j] -= f * rows[r][j]
			}
			rhs[i] -= f * rhs[r]
		}
		r++
	}

	for i := r; i < m; i++ {
		if math.Abs(rhs[i]) > tol {
			return nil, nil, fmt.Errorf(
				"row reduction found 0 = %g: %w", rhs[i], ErrInfeasible,
			)
		}
	}

	// simplex phase 1 wants nonnegative right-hand sides
	for i := range r {
		if rhs[i] < 0 {
			for j := range n {
				rows[i][j] = -rows[i][j]
			}
			rhs[i] = -rhs[i]
		}
	}

	return rows[:r], rhs[:r], nil
}
