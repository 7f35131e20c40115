package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/eliza-gateway/internal/api"
	"github.com/yourorg/eliza-gateway/internal/config"
	"github.com/yourorg/eliza-gateway/internal/eliza"
	"github.com/yourorg/eliza-gateway/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel)
	logger.Info().Str("addr", cfg.HTTPAddr).Str("model", cfg.ModelName).Msg("starting gateway")

	engine, err := eliza.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("engine init failed")
	}

	app := api.NewServer(cfg, engine, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
}
