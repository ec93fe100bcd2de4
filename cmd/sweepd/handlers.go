package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/repository"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, map[string]string{"status": "ok"})
}

type LaunchParams struct {
	Width       int    `schema:"width,required"`
	Height      int    `schema:"height,required"`
	MineCount   int    `schema:"mine_count,required"`
	Seed        uint64 `schema:"seed"`
	TurnDelayMs int    `schema:"turn_delay_ms"`
}

func handleLaunchRun(w http.ResponseWriter, r *http.Request) {
	var params LaunchParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendError(w, err)
		return
	}

	gameParams := mines.GameParams{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
	}
	board, err := mines.NewBoard(gameParams, params.Seed)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendError(w, err)
		return
	}

	run, err := repo.CreateRun(r.Context(), gameParams, params.Seed)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to create run: ", err)
		return
	}

	lr := runs.add(run.RunId)
	go playRun(run.RunId, board, lr, time.Duration(params.TurnDelayMs)*time.Millisecond)

	log.WithFields(logrus.Fields{
		"runId":  run.RunId,
		"params": gameParams.String(),
		"seed":   params.Seed,
	}).Info("run launched")

	w.WriteHeader(http.StatusCreated)
	sendJSON(w, run)
}

// playRun plays a launched board to the end on its own goroutine,
// feeding watchers and archiving the result. The delay spaces turns
// out so a watcher can follow along.
func playRun(runId int64, board *mines.Board, lr *liveRun, delay time.Duration) {
	player := solver.Player{
		Observe: func(turn int, snap mines.Snapshot, _ []solver.CellBounds) {
			lr.publish(frame{Turn: turn, Snapshot: snap})
			if delay > 0 {
				time.Sleep(delay)
			}
		},
	}

	rep, err := player.Play(board)
	if err != nil {
		log.WithField("runId", runId).Error("run aborted: ", err)
	}

	board.RevealMines()
	lr.finish(frame{
		Turn:     rep.Turns,
		Snapshot: board.Snapshot(),
		Outcome:  rep.Outcome.String(),
	})
	// keep the registry entry until the row is final, so a watcher
	// arriving mid-archive still gets the finished frame instead of a
	// database row that says running
	defer runs.remove(runId)

	// the launching request is long gone; archive on our own context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := repo.FinishRun(ctx, runId, rep, board.Cells); err != nil {
		log.WithField("runId", runId).Error("unable to archive run: ", err)
		return
	}

	log.WithFields(logrus.Fields{
		"runId":  runId,
		"report": rep.String(),
	}).Info("run finished")
}

type ListParams struct {
	Outcome   *string `schema:"outcome"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
}

func handleListRuns(w http.ResponseWriter, r *http.Request) {
	var params ListParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendError(w, err)
		return
	}

	filter := repository.RunFilter{Outcome: params.Outcome}
	if params.Width != nil && params.Height != nil && params.MineCount != nil {
		filter.GameParams = &mines.GameParams{
			Width:     *params.Width,
			Height:    *params.Height,
			MineCount: *params.MineCount,
		}
	}

	list, err := repo.ListRuns(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to list runs: ", err)
		return
	}
	sendJSON(w, list)
}

func handleFetchRun(w http.ResponseWriter, r *http.Request) {
	runId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	run, err := repo.FetchRun(r.Context(), runId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to fetch run: ", err)
		return
	}
	sendJSON(w, run)
}
