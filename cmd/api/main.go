package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptlab/promptlab/internal/api"
	"github.com/promptlab/promptlab/internal/api/middleware"
	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/keepalive"
	"github.com/promptlab/promptlab/internal/setup"
	"github.com/promptlab/promptlab/internal/setup/logger"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "PromptLab API",
			Description: "Prompt tuning experiments: sample, generate, score",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "experiments", Description: "Experiment runs and history"}},
		{TagProps: spec.TagProps{Name: "scoring", Description: "Standalone scoring operations"}},
	}
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := config.Load()
	log.Logger = logger.NewWithOutput(cfg.LogLevel, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	appLogger := log.Logger

	modelsConfig, err := config.LoadModelsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load models config")
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire Components
	deps, err := setup.Wire(ctx, cfg, modelsConfig, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Store.Close()

	// API
	handler := api.NewHandler(deps.Service, deps.Store, &appLogger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	openAPIConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(openAPIConfig))

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Self-ping keeps free-tier hosts from idling the instance out.
	if cfg.KeepaliveURL != "" {
		pinger := keepalive.NewPinger(cfg.KeepaliveURL, cfg.KeepaliveInterval, &appLogger)
		go pinger.Start(ctx)
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("address", addr).Msg("Starting PromptLab API")

	// No write timeout: a 20-run experiment holds the connection for
	// minutes while generation is paced.
	server := http.Server{
		Addr:        addr,
		Handler:     corsHandler.Handler(container),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown incomplete")
	}
}
