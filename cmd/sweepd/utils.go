package main

import (
	"encoding/json"
	"net/http"
)

func sendJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error("unable to marshal response: ", err)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		log.Error("unable to send response: ", err)
	}
}

func sendError(w http.ResponseWriter, e error) {
	sendJSON(w, map[string]string{"error": e.Error()})
}
