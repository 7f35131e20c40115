// Package audit emits one structured log record per gateway invocation.
package audit

import (
	"github.com/rs/zerolog"
)

const previewLimit = 120

// Record is the per-invocation log entry. It is write-once: populated by the
// handler and emitted exactly once, whatever the outcome of the request.
type Record struct {
	RequestID      string
	CallerIP       string
	Path           string
	StatusCode     int
	LatencyMS      int64
	MessagePreview string
	Err            string
}

// Recorder writes invocation records to the process logger. Emission is
// best-effort: a failure inside the logging path must never fail the request.
type Recorder struct {
	log     zerolog.Logger
	verbose bool
}

func NewRecorder(logger zerolog.Logger, verbose bool) *Recorder {
	return &Recorder{log: logger, verbose: verbose}
}

// Write emits rec as a single JSON log line. The preview is truncated to a
// bounded length; full bodies only ever appear via Verbatim.
func (r *Recorder) Write(rec Record) {
	defer func() { _ = recover() }()

	ev := r.log.Info()
	if rec.StatusCode >= 500 {
		ev = r.log.Error()
	} else if rec.StatusCode >= 400 {
		ev = r.log.Warn()
	}
	ev.Str("request_id", rec.RequestID).
		Str("caller_ip", rec.CallerIP).
		Str("path", rec.Path).
		Int("status_code", rec.StatusCode).
		Int64("latency_ms", rec.LatencyMS).
		Str("message_preview", truncate(rec.MessagePreview, previewLimit))
	if rec.Err != "" {
		ev = ev.Str("error", rec.Err)
	}
	ev.Msg("invocation")
}

// Verbatim emits the complete inbound request body as a clearly marked
// separate record. Only active in verbose mode; operators enabling it are
// accepting that message content may be sensitive. Credential material is
// still kept out: callers must not pass the Authorization header value here.
func (r *Recorder) Verbatim(requestID, callerIP, path string, body []byte) {
	if !r.verbose {
		return
	}
	defer func() { _ = recover() }()

	r.log.Info().
		Str("log_type", "request_verbatim").
		Str("request_id", requestID).
		Str("caller_ip", callerIP).
		Str("path", path).
		Str("body", string(body)).
		Msg("inbound request")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the preview stays valid UTF-8.
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
