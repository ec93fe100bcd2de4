package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-solver/internal/mines"
)

func TestPlayCascadeWin(t *testing.T) {
	t.Parallel()

	// 3x3, one mine at (0,0): opening (2,2) cascades through all
	// seven remaining safe cells, so the run is won on arrival and
	// the mine is never touched
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 3, Height: 3, MineCount: 1}, []int{0},
	)
	require.NoError(t, err)
	b.OpenCell(2, 2)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, mines.Hidden, b.Cells[0])
}

func TestPlayWonOnArrival(t *testing.T) {
	t.Parallel()

	// 1x3 strip, mine at the end: the opening flood reveals both safe
	// cells, so the game is already won and no flag turn ever runs
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 3, Height: 1, MineCount: 1}, []int{2},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, 0, rep.Turns)
	require.Equal(t, 0, rep.Flags)
	require.Equal(t, mines.Hidden, b.Cells[2])
}

func TestPlayCertifiedFlag(t *testing.T) {
	t.Parallel()

	// 1x6 strip, mines on 1 and 4. Opening (0,0) pins cell 1 as a
	// mine while every other covered cell stays uncertain, so the
	// only certainty-preserving first move is the flag; the flag then
	// explains cell 2's count once a guess lands there, and the rest
	// of the strip falls to certified reveals
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 6, Height: 1, MineCount: 2}, []int{1, 4},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, 4, rep.Turns)
	require.Equal(t, 1, rep.Flags)
	require.Equal(t, 1, rep.Guesses)
	require.Equal(t, 2, rep.CertainReveals)
	require.Equal(t, mines.Flagged, b.Cells[1])
	require.Equal(t, mines.Hidden, b.Cells[4])
}

func TestPlaySafeBeforeFlag(t *testing.T) {
	t.Parallel()

	// 1x4 strip, mine on cell 2: the turn certifies both a mine and a
	// safe cell, and the safe reveal must come first — here it is the
	// last covered safe cell, so the win lands before any flag
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 4, Height: 1, MineCount: 1}, []int{2},
	)
	require.NoError(t, err)
	b.OpenCell(0, 0)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, 1, rep.Turns)
	require.Equal(t, 1, rep.CertainReveals)
	require.Equal(t, 0, rep.Flags)
	require.Equal(t, 0, rep.Guesses)
	require.Equal(t, mines.Hidden, b.Cells[2])
}

func TestPlayRevealBatchFloodOverlap(t *testing.T) {
	t.Parallel()

	// a mine-free board certifies every cell safe in a single batch;
	// opening the first floods over the rest, which must read as
	// progress rather than as illegal moves
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 2, Height: 2, MineCount: 0}, nil,
	)
	require.NoError(t, err)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, 1, rep.Turns)
	require.Equal(t, 4, rep.CertainReveals)
	require.Equal(t, 0, rep.Guesses)
}

func TestPlayGuessFallback(t *testing.T) {
	t.Parallel()

	// 2x2 with one mine and nothing revealed: the LP certifies
	// nothing, so the run is guesses all the way down (and, with the
	// mine in the last row-major corner, deterministically won on the
	// third guess, leaving the mine covered and unflagged)
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 2, Height: 2, MineCount: 1}, []int{3},
	)
	require.NoError(t, err)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeWon, rep.Outcome)
	require.Equal(t, 3, rep.Turns)
	require.Equal(t, 3, rep.Guesses)
	require.Equal(t, 0, rep.Flags)
	require.Equal(t, mines.Hidden, b.Cells[3])
}

func TestPlayGuessCanLose(t *testing.T) {
	t.Parallel()

	// same blank start, mine in the first row-major corner: the
	// deterministic first guess hits it
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 2, Height: 2, MineCount: 1}, []int{0},
	)
	require.NoError(t, err)

	rep, err := Player{}.Play(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeLost, rep.Outcome)
	require.Equal(t, 1, rep.Guesses)
	require.True(t, b.Lost())
}

func TestPlayInfeasibleBoardIsADefect(t *testing.T) {
	t.Parallel()

	// corrupt the knowledge grid by hand: a count no neighbourhood
	// can satisfy must abort as a modeling defect, never pass for a
	// game outcome
	b, err := mines.NewBoardWithMines(
		mines.GameParams{Width: 2, Height: 2, MineCount: 0}, nil,
	)
	require.NoError(t, err)
	b.Cells[0] = mines.CellState(3)

	rep, err := Player{}.Play(b)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrModelingDefect)
	require.NotErrorIs(t, err, ErrSolverFailure)
	require.Equal(t, OutcomeError, rep.Outcome)

	var defect *DefectError
	require.ErrorAs(t, err, &defect)
	require.NotNil(t, defect.System)
	require.Len(t, defect.Grid, 4)
}

func TestPlaySoundnessAcrossSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	for seed := uint64(1); seed <= 20; seed++ {
		b, err := mines.NewBoard(params, seed)
		require.NoError(t, err)

		progress := 0
		p := Player{
			Observe: func(turn int, snap mines.Snapshot, bounds []CellBounds) {
				// every certification must agree with ground truth
				for _, cb := range bounds {
					x, y := params.Point(cb.Cell)
					switch cb.Verdict {
					case Safe:
						require.False(t, b.MineAt(x, y),
							"seed %d turn %d: safe cell %d is a mine", seed, turn, cb.Cell)
					case Mine:
						require.True(t, b.MineAt(x, y),
							"seed %d turn %d: mine cell %d is clear", seed, turn, cb.Cell)
					}
				}

				// each turn strictly grows revealed+flagged, and
				// flags never outrun the budget
				require.Greater(t, snap.Revealed+snap.Flagged, progress,
					"seed %d turn %d made no progress", seed, turn)
				progress = snap.Revealed + snap.Flagged
				require.LessOrEqual(t, snap.Flagged, params.MineCount)
			},
		}

		rep, err := p.Play(b)
		require.NoError(t, err, "seed %d", seed)
		require.Contains(t, []Outcome{OutcomeWon, OutcomeLost}, rep.Outcome)
		require.LessOrEqual(t, rep.Turns, params.CellCount())

		if rep.Outcome == OutcomeWon {
			require.True(t, b.Won())
			for i, s := range b.Cells {
				x, y := params.Point(i)
				if s == mines.Flagged {
					require.True(t, b.MineAt(x, y))
				}
			}
		}
	}
}
