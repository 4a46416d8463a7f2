package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/http/handlers"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/http/httpapi"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/infra"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/flux"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/image"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/prompt"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	fluxClient := flux.NewClient(flux.Options{
		APIKey:         cfg.FluxAPIKey,
		BaseURL:        cfg.FluxBaseURL,
		ModelPath:      cfg.FluxModelPath,
		MaxAttempts:    cfg.PollMaxAttempts,
		PollInterval:   cfg.PollInterval,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         &logger,
	})

	app := handlers.NewApp(cfg, logger, image.NewFluxGenerator(fluxClient), prompt.NewStaticSuggester())
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", fluxClient.ModelPath()).Msgf("listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
