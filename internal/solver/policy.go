package solver

type MoveKind int8

const (
	MoveReveal MoveKind = iota // open every cell, all certified safe
	MoveFlag                   // flag every cell, all certified mines
	MoveGuess                  // open a single uncertain cell, at risk
)

func (k MoveKind) String() string {
	switch k {
	case MoveReveal:
		return "reveal"
	case MoveFlag:
		return "flag"
	default:
		return "guess"
	}
}

// Move is one turn's worth of actions, all of the same kind.
type Move struct {
	Kind  MoveKind
	Cells []int
}

// Decide turns a turn's bounds into a move.
//
// Certainty always comes first: if any cell is provably safe, open all
// of them; otherwise if any is provably a mine, flag all of them.
// Only when the relaxation certifies nothing do we risk a guess — the
// uncertain cell with the lowest estimate, earliest in row-major order
// on ties. The ordering means the policy never takes an avoidable
// risk, yet always makes progress even when the LP relaxation stalls
// (boards needing global parity reasoning certify nothing locally).
//
// ok is false only when there is nothing left to move on.
func Decide(bounds []CellBounds) (move Move, ok bool) {
	var safe, mined []int
	for _, cb := range bounds {
		switch cb.Verdict {
		case Safe:
			safe = append(safe, cb.Cell)
		case Mine:
			mined = append(mined, cb.Cell)
		}
	}

	if len(safe) > 0 {
		return Move{Kind: MoveReveal, Cells: safe}, true
	}
	if len(mined) > 0 {
		return Move{Kind: MoveFlag, Cells: mined}, true
	}

	best := -1
	for i, cb := range bounds {
		// strict less keeps the earliest cell on ties; bounds
		// arrive in row-major order
		if best < 0 || cb.Estimate < bounds[best].Estimate {
			best = i
		}
	}
	if best < 0 {
		return Move{}, false
	}
	return Move{Kind: MoveGuess, Cells: []int{bounds[best].Cell}}, true
}
