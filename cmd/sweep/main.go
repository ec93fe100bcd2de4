package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

var log = logrus.New()

var (
	width     int
	height    int
	mineCount int
	preset    string
	seed      uint64
	count     int
	parallel  int
	logPath   string
	verbose   bool
	watch     bool
)

var presets = map[string]mines.GameParams{
	"beginner":     {Width: 9, Height: 9, MineCount: 10},
	"intermediate": {Width: 16, Height: 16, MineCount: 40},
	"expert":       {Width: 30, Height: 16, MineCount: 99},
	"expert+":      {Width: 30, Height: 24, MineCount: 150},
}

func init() {
	flag.IntVar(&width, "width", 30, "board width")
	flag.IntVar(&height, "height", 16, "board height")
	flag.IntVar(&mineCount, "mines", 99, "number of mines")
	flag.StringVar(&preset, "preset", "",
		"board preset (beginner, intermediate, expert, expert+); overrides -width/-height/-mines")
	flag.Uint64Var(&seed, "seed", 1, "base board seed; game i plays seed+i")
	flag.IntVar(&count, "count", 1, "number of games to play")
	flag.IntVar(&parallel, "parallel", 1, "games played concurrently")
	flag.StringVar(&logPath, "log", "", "also write logs to this rotating file")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&watch, "watch", false, "print the board after every turn (single game only)")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		mines.Log.SetLevel(logrus.DebugLevel)
		solver.Log.SetLevel(logrus.DebugLevel)
	}

	if logPath != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logrus.DebugLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create log file hook: ", err)
		}
		log.AddHook(hook)
		mines.Log.AddHook(hook)
		solver.Log.AddHook(hook)
	}
}

func playOne(gameSeed uint64) (*solver.Report, error) {
	params := mines.GameParams{Width: width, Height: height, MineCount: mineCount}
	board, err := mines.NewBoard(params, gameSeed)
	if err != nil {
		return nil, err
	}

	player := solver.Player{}
	if watch && count == 1 {
		player.Observe = func(turn int, snap mines.Snapshot, _ []solver.CellBounds) {
			fmt.Printf("turn %d (%d revealed, %d flagged)\n%s\n",
				turn, snap.Revealed, snap.Flagged,
				snap.Cells.ToString(snap.Width))
		}
	}

	rep, err := player.Play(board)
	if err != nil {
		return rep, err
	}

	if watch && count == 1 {
		board.RevealMines()
		fmt.Printf("final board\n%s\n", board.Cells.ToString(board.Width))
	}
	return rep, nil
}

func main() {
	flag.Parse()
	setupLogging()

	if preset != "" {
		p, ok := presets[preset]
		if !ok {
			log.Fatalf("unknown preset %q", preset)
		}
		width, height, mineCount = p.Width, p.Height, p.MineCount
	}

	params := mines.GameParams{Width: width, Height: height, MineCount: mineCount}
	log.Infof("playing %d game(s) of %s, base seed %d", count, params, seed)

	reports := make([]*solver.Report, count)

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(parallel)
	for i := range count {
		g.Go(func() error {
			gameSeed := seed + uint64(i)
			rep, err := playOne(gameSeed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", gameSeed, err)
			}
			reports[i] = rep
			log.WithFields(logrus.Fields{
				"seed":   gameSeed,
				"report": rep.String(),
			}).Info("game over")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("run aborted: ", err)
	}

	var won, turns, guesses int
	for _, rep := range reports {
		if rep.Outcome == solver.OutcomeWon {
			won++
		}
		turns += rep.Turns
		guesses += rep.Guesses
	}
	log.Infof(
		"won %d/%d (%.0f%%), %.1f turns and %.1f guesses per game",
		won, count, 100*float64(won)/float64(count),
		float64(turns)/float64(count), float64(guesses)/float64(count),
	)

	if won < count {
		os.Exit(1)
	}
}
