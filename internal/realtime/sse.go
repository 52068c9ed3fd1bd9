package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// StreamHandler serves changes as Server-Sent Events. The optional ?table=
// query narrows the stream to one table.
type StreamHandler struct {
	Hub       *Hub
	Logger    zerolog.Logger
	Heartbeat time.Duration
}

func (s StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	table := r.URL.Query().Get("table")
	switch table {
	case "", TableAppointments, TableTransactions, TableExpenses:
	default:
		http.Error(w, "unknown table", http.StatusBadRequest)
		return
	}

	changes, cancel := s.Hub.Subscribe(table)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	interval := s.Heartbeat
	if interval <= 0 {
		interval = 25 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case change, ok := <-changes:
			if !ok {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				s.Logger.Error().Err(err).Msg("encode change")
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: change\ndata: %s\n\n", change.ID, payload)
			flusher.Flush()
		}
	}
}
