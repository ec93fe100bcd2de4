package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// NewBoard places params.MineCount mines uniformly at random. The
// layout is fully determined by the seed.
func NewBoard(params GameParams, seed uint64) (*Board, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", params.Width, params.Height)
	}
	if params.MineCount < 0 || params.MineCount > params.CellCount() {
		return nil, fmt.Errorf(
			"mine count %d out of range for a %dx%d board",
			params.MineCount, params.Width, params.Height,
		)
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	/*
	 * Write down the list of possible mine locations, then pick n
	 * off the list at random.
	 */
	candidates := make([]int, params.CellCount())
	for i := range candidates {
		candidates[i] = i
	}
	mineCells := make([]int, 0, params.MineCount)
	k := len(candidates)
	for range params.MineCount {
		i := r.IntN(k)
		mineCells = append(mineCells, candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	board, err := NewBoardWithMines(params, mineCells)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"params": params.String(),
		"seed":   seed,
	}).Debug("generated board")
	return board, nil
}
