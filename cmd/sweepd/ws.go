package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

// handleWatchRun streams a run's per-turn snapshots. Watching an
// already archived run yields its final state in a single frame.
func handleWatchRun(w http.ResponseWriter, r *http.Request) {
	runId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	lr, live := runs.get(runId)
	if !live {
		run, err := repo.FetchRun(r.Context(), runId)
		if errors.Is(err, pgx.ErrNoRows) {
			w.WriteHeader(http.StatusNotFound)
			return
		} else if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
			return
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("upgrade: ", err)
			return
		}
		defer c.Close()

		c.SetWriteDeadline(time.Now().Add(wsc.WriteWait))
		if err := c.WriteJSON(run); err != nil {
			log.Error("write: ", err)
			return
		}
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	ch, cancel := lr.subscribe()
	defer cancel()

	for f := range ch {
		c.SetWriteDeadline(time.Now().Add(wsc.WriteWait))
		if err := c.WriteJSON(f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("write: ", err)
			}
			return
		}
	}

	c.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}
