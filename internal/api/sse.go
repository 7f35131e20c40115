package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseWriter frames Server-Sent Events. Each unit goes out as
// "data: <payload>\n\n"; when the transport supports it, every unit is
// flushed as soon as it is produced.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: flusher}
}

// WriteEvent serializes data as JSON and emits one SSE unit.
func (s *sseWriter) WriteEvent(data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// WriteDone emits the terminating [DONE] sentinel. It is a literal string,
// not a JSON object.
func (s *sseWriter) WriteDone() {
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
