package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-solver/internal/middleware"
)

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("POST /v1/runs", handleLaunchRun)
	mux.HandleFunc("GET /v1/runs", handleListRuns)
	mux.HandleFunc("GET /v1/runs/{id}", handleFetchRun)

	mux.HandleFunc("/v1/runs/{id}/watch", handleWatchRun)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Logging(log),
	)
}
