package solver

import "fmt"

type Outcome int8

const (
	OutcomeError Outcome = iota // aborted on a defect, not a game result
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "error"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"won"`:
		*o = OutcomeWon
	case `"lost"`:
		*o = OutcomeLost
	case `"error"`:
		*o = OutcomeError
	default:
		return fmt.Errorf("unknown outcome %s", data)
	}
	return nil
}

// Report sums up a finished (or aborted) run.
//
// CertainReveals counts cells opened on a certified-safe move,
// including any zero-count flood that move set off; GuessReveals
// counts the same for guessed moves. Guesses counts risked moves, not
// cells.
type Report struct {
	Outcome        Outcome `json:"outcome"`
	Turns          int     `json:"turns"`
	CertainReveals int     `json:"certain_reveals"`
	GuessReveals   int     `json:"guess_reveals"`
	Flags          int     `json:"flags"`
	Guesses        int     `json:"guesses"`
}

func (r Report) String() string {
	return fmt.Sprintf(
		"%s in %d turns (%d certain, %d guessed, %d flags, %d guesses)",
		r.Outcome, r.Turns, r.CertainReveals, r.GuessReveals, r.Flags, r.Guesses,
	)
}
