package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/mcpadapter"
	"github.com/promptlab/promptlab/internal/setup"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := config.Load()
	modelsConfig, err := config.LoadModelsConfig()
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load models config")
		os.Exit(1)
	}

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, modelsConfig, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Store.Close()

	// Create MCP Server
	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/promptlab-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "promptlab",
			Version: "1.0.0",
		}, nil,
	)

	// Add Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_experiment",
		Description: "Run a prompt experiment: sample generation parameters, generate one response per tuple, score each on coherence, completeness, readability and relevance, and aggregate",
	}, mcpadapter.NewRunExperimentHandler(deps.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "score_response",
		Description: "Score one already-generated text against a prompt without calling any provider. Faster than a full experiment.",
	}, mcpadapter.NewScoreHandler(deps.Service))
	return server
}
