package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// streamSnapshots serves a snapshot feed as Server-Sent Events. The initial
// snapshot goes out immediately, then every update until the client
// disconnects. cancel is always called so the subscription never leaks.
func streamSnapshots[T any](w http.ResponseWriter, r *http.Request, initial T, feed <-chan T, cancel func()) {
	defer cancel()

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if !writeEvent(w, initial) {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, ok := <-feed:
			if !ok {
				return
			}
			if !writeEvent(w, snapshot) {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, data interface{}) bool {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to encode event: %v", err)
		return false
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return false
	}
	return true
}
