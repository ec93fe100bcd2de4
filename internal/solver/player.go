package solver

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

// Defect kinds. All of them mean a bug somewhere in constraint
// generation or state tracking — none is a legitimate game outcome,
// and none is ever retried.
var (
	ErrModelingDefect = errors.New("modeling defect")
	ErrSolverFailure  = errors.New("solver failure")
	ErrIllegalMove    = errors.New("illegal move")
)

// DefectError halts a run with full context: the kind of defect, the
// constraint system of the failing turn and the board knowledge it was
// built from, plus the underlying cause.
type DefectError struct {
	Kind   error
	System *System
	Grid   mines.Grid
	Err    error
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Err, e.System)
}

func (e *DefectError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Player drives a board to a terminal state, turn by turn: rebuild
// constraints from scratch, certify bounds for every hidden cell, act
// on the policy's move, repeat. It is the board's only writer.
type Player struct {
	// LP backend; defaults to [Simplex].
	LP LPSolver

	// Observe, when set, receives a snapshot after every completed
	// turn along with the bounds that drove it. Observers must not
	// touch the board.
	Observe func(turn int, snap mines.Snapshot, bounds []CellBounds)
}

// Play runs the loop until the game is won, lost, or a defect is
// found. The returned report always carries an outcome; err is non-nil
// only for defects (Outcome == OutcomeError).
func (p Player) Play(b *mines.Board) (*Report, error) {
	lps := p.LP
	if lps == nil {
		lps = Simplex{}
	}
	est := Estimator{LP: lps}
	rep := &Report{}

	// Each turn reveals or flags at least one cell, so any valid
	// board terminates within CellCount turns.
	for turn := 1; turn <= b.CellCount(); turn++ {
		if b.Won() {
			rep.Outcome = OutcomeWon
			return rep, nil
		}

		sys := BuildSystem(b)
		if sys.NumVars() == 0 {
			// every covered cell is a certified, flagged mine
			rep.Outcome = OutcomeWon
			return rep, nil
		}

		bounds, err := est.EstimateAll(sys)
		if err != nil {
			return p.abort(rep, b, sys, err)
		}

		move, ok := Decide(bounds)
		if !ok {
			return p.abort(rep, b, sys, fmt.Errorf(
				"no move on %d hidden cells: %w", sys.NumVars(), ErrIllegalMove,
			))
		}

		rep.Turns = turn
		before := b.Revealed()

		for _, cell := range move.Cells {
			if b.Cells[cell] != mines.Hidden {
				// an earlier cell of this batch may have flooded over
				// this one; anything else is a defect
				if move.Kind != MoveFlag && b.Cells[cell].Revealed() {
					continue
				}
				return p.abort(rep, b, sys, fmt.Errorf(
					"%s targets cell %d in state %s: %w",
					move.Kind, cell, b.Cells[cell], ErrIllegalMove,
				))
			}
			x, y := b.Point(cell)
			switch move.Kind {
			case MoveFlag:
				b.FlagCell(x, y)
				rep.Flags++
			default:
				if b.OpenCell(x, y) == mines.Exploded {
					rep.Outcome = OutcomeLost
					if move.Kind == MoveGuess {
						rep.Guesses++
						rep.GuessReveals++
					}
					return rep, nil
				}
			}
		}

		switch move.Kind {
		case MoveReveal:
			rep.CertainReveals += b.Revealed() - before
		case MoveGuess:
			rep.Guesses++
			rep.GuessReveals += b.Revealed() - before
		}

		Log.WithFields(logrus.Fields{
			"turn":   turn,
			"move":   move.Kind.String(),
			"cells":  len(move.Cells),
			"hidden": b.Hidden(),
		}).Debug("turn done")

		if p.Observe != nil {
			p.Observe(turn, b.Snapshot(), bounds)
		}
	}

	return p.abort(rep, b, BuildSystem(b), fmt.Errorf(
		"no terminal state after %d turns: %w", b.CellCount(), ErrIllegalMove,
	))
}

func (p Player) abort(
	rep *Report, b *mines.Board, sys *System, err error,
) (*Report, error) {
	rep.Outcome = OutcomeError

	defect := &DefectError{System: sys, Grid: b.Cells.Clone(), Err: err}
	switch {
	case errors.Is(err, ErrInfeasible):
		defect.Kind = ErrModelingDefect
	case errors.Is(err, ErrIllegalMove):
		defect.Kind = ErrIllegalMove
	default:
		defect.Kind = ErrSolverFailure
	}

	Log.WithFields(logrus.Fields{
		"kind":   defect.Kind.Error(),
		"system": sys.String(),
		"error":  err.Error(),
	}).Error("run aborted")
	Log.Debug("\n" + defect.Grid.ToString(b.Width))

	return rep, defect
}
