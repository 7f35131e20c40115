package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourorg/eliza-gateway/internal/access"
	"github.com/yourorg/eliza-gateway/internal/audit"
	"github.com/yourorg/eliza-gateway/internal/auth"
	"github.com/yourorg/eliza-gateway/internal/config"
	"github.com/yourorg/eliza-gateway/internal/format"
	"github.com/yourorg/eliza-gateway/internal/generate"
	"github.com/yourorg/eliza-gateway/internal/middleware"
	"github.com/yourorg/eliza-gateway/internal/openai"
)

const maxBodyBytes = 1 << 20

// Deps carries the handler's collaborators. Everything here is constructed
// once at startup and read-only afterwards.
type Deps struct {
	Cfg    config.Config
	Filter *access.Filter
	Gen    generate.Generator
	Audit  *audit.Recorder
	Log    zerolog.Logger
}

// ChatCompletions orchestrates one invocation: IP check, credential check,
// parse, generate, format. Every terminal path, error or success, emits one
// audit record with the resulting status code.
func ChatCompletions(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := middleware.RequestIDFrom(r.Context())
		callerIP := access.CallerIP(r, d.Cfg.TrustProxy)

		finish := func(status int, preview, errTag string) {
			d.Audit.Write(audit.Record{
				RequestID:      rid,
				CallerIP:       callerIP,
				Path:           r.URL.Path,
				StatusCode:     status,
				LatencyMS:      time.Since(start).Milliseconds(),
				MessagePreview: preview,
				Err:            errTag,
			})
		}

		// The body is read up front so verbose mode can record the complete
		// inbound event even for invocations that are denied below. A read
		// failure is still answered in state-machine order, after the IP
		// and credential checks.
		body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		d.Audit.Verbatim(rid, callerIP, r.URL.Path, body)

		if !d.Filter.Allowed(callerIP) {
			writeError(w, http.StatusForbidden, "Caller IP not allowed", "forbidden")
			finish(http.StatusForbidden, "", "access_denied")
			return
		}

		dec := auth.Validate(r.Header.Get("Authorization"), d.Cfg.APIKey)
		if !dec.Allowed {
			writeError(w, http.StatusUnauthorized, "Invalid or missing API key", "unauthorized")
			finish(http.StatusUnauthorized, "", "auth_failed:"+string(dec.Reason))
			return
		}

		if readErr != nil {
			writeError(w, http.StatusBadRequest, "Unable to read request body", "bad_request")
			finish(http.StatusBadRequest, "", "malformed_request")
			return
		}

		req, err := openai.Parse(body)
		if err != nil {
			tag := "validation_error"
			if errors.Is(err, openai.ErrMalformed) {
				tag = "malformed_request"
			}
			writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
			finish(http.StatusBadRequest, "", tag)
			return
		}

		// The generator is the sole external dependency; its failures are
		// mapped to a generic 500, never propagated raw.
		reply, err := d.Gen.Generate(r.Context(), req.LatestUserMessage())
		if err != nil {
			d.Log.Error().Err(err).Str("rid", rid).Msg("generation failed")
			writeError(w, http.StatusInternalServerError, "Internal error generating response", "server_error")
			finish(http.StatusInternalServerError, "", "generation_failure")
			return
		}

		model := req.Model
		if model == "" {
			model = d.Cfg.ModelName
		}
		created := time.Now().Unix()
		id := completionID()

		if req.Stream {
			sse := newSSEWriter(w)
			for _, chunk := range format.StreamChunks(reply, id, model, created, d.Cfg.SSEChunkSize) {
				if err := sse.WriteEvent(chunk); err != nil {
					// Client is gone; nothing more to send.
					finish(http.StatusOK, reply, "stream_write_failed")
					return
				}
			}
			sse.WriteDone()
			finish(http.StatusOK, reply, "")
			return
		}

		writeJSON(w, http.StatusOK, format.Completion(reply, id, model, created, req.LatestUserMessage()))
		finish(http.StatusOK, reply, "")
	}
}

// ListModels reports the single configured model.
func ListModels(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, openai.ModelsResponse{
			Object: "list",
			Data: []openai.ModelEntry{
				{ID: cfg.ModelName, Object: "model", OwnedBy: "eliza-gateway"},
			},
		})
	}
}

func completionID() string {
	u := uuid.New()
	return "eliza-" + hex.EncodeToString(u[:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, typ string) {
	writeJSON(w, status, openai.ErrorResponse{
		Error: openai.ErrorBody{Message: message, Type: typ},
	})
}
