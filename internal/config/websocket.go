package config

import (
	"os"
	"time"
)

type WebSocket struct {
	// WriteWait bounds how long a single snapshot frame may take to
	// go out before the watcher is dropped.
	WriteWait time.Duration
}

func NewWebSocket() *WebSocket {
	writeWait := 10 * time.Second
	if raw, ok := os.LookupEnv("SWEEPD_WS_WRITE_WAIT"); ok {
		if d, err := time.ParseDuration(raw); err == nil {
			writeWait = d
		}
	}
	return &WebSocket{WriteWait: writeWait}
}
