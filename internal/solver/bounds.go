package solver

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Epsilon absorbs solver floating-point slack: a bound within Epsilon
// of 0 or 1 counts as sitting exactly on it.
const Epsilon = 1e-6

type Verdict int8

const (
	Uncertain Verdict = iota
	Safe
	Mine
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case Mine:
		return "mine"
	default:
		return "uncertain"
	}
}

// CellBounds is the certified range of a single cell's mine value.
//
// Lower and Upper are the minimum and maximum the cell's variable can
// take across all feasible assignments. Upper pinned to 0 proves the
// cell safe; Lower pinned to 1 proves it a mine. Estimate is the
// midpoint, used only to rank guesses; it is not a true marginal
// probability.
type CellBounds struct {
	Cell     int     `json:"cell"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Verdict  Verdict `json:"-"`
	Estimate float64 `json:"estimate"`
}

// Estimator certifies bounds for every variable of a system by
// running the solver twice per cell, once minimizing and once
// maximizing. A single feasibility solve cannot tell whether a cell's
// value is forced; only the min/max pair gives a certified range.
type Estimator struct {
	LP LPSolver
}

// EstimateAll returns bounds for every variable, in system (row-major
// board) order. Any solver error aborts the whole pass.
func (e Estimator) EstimateAll(sys *System) ([]CellBounds, error) {
	bounds := make([]CellBounds, 0, sys.NumVars())
	for v, cell := range sys.Cells {
		lower, err := e.LP.Solve(sys, v, Minimize)
		if err != nil {
			return nil, err
		}
		upper, err := e.LP.Solve(sys, v, Maximize)
		if err != nil {
			return nil, err
		}
		if upper < lower-Epsilon {
			return nil, fmt.Errorf(
				"crossed bounds for x%d: [%g, %g]", v, lower, upper,
			)
		}

		cb := CellBounds{
			Cell:     cell,
			Lower:    lower,
			Upper:    upper,
			Estimate: (lower + upper) / 2,
		}
		switch {
		case cb.Upper <= Epsilon:
			cb.Verdict = Safe
			cb.Estimate = 0
		case cb.Lower >= 1-Epsilon:
			cb.Verdict = Mine
			cb.Estimate = 1
		}
		bounds = append(bounds, cb)

		Log.WithFields(logrus.Fields{
			"cell":    cell,
			"lower":   lower,
			"upper":   upper,
			"verdict": cb.Verdict.String(),
		}).Debug("bounds")
	}
	return bounds, nil
}
