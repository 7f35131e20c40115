package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yourorg/eliza-gateway/internal/access"
	"github.com/yourorg/eliza-gateway/internal/audit"
	"github.com/yourorg/eliza-gateway/internal/config"
	"github.com/yourorg/eliza-gateway/internal/generate"
	"github.com/yourorg/eliza-gateway/internal/metrics"
	"github.com/yourorg/eliza-gateway/internal/middleware"
)

type Server struct {
	Router http.Handler
}

func NewServer(cfg config.Config, gen generate.Generator, logger zerolog.Logger) *Server {
	deps := Deps{
		Cfg:    cfg,
		Filter: access.NewFilter(cfg.AllowedCIDRs, logger),
		Gen:    gen,
		Audit:  audit.NewRecorder(logger, cfg.VerboseRequestLog),
		Log:    logger,
	}
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Instrument(m))
	r.Use(middleware.AccessLog(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	r.Method(http.MethodGet, "/metrics", m.Handler())

	chat := ChatCompletions(deps)
	r.Post("/eliza", chat)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/models", ListModels(cfg))
		r.Post("/chat/completions", chat)
	})

	return &Server{Router: r}
}
