// Package main provides the entry point for the studioflow MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/studioflow/internal/config"
	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/server"
	"github.com/raphaelgruber/studioflow/internal/service"
	"github.com/raphaelgruber/studioflow/internal/store"
	"github.com/raphaelgruber/studioflow/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel, cfg.LogLevel)
	defer func() { _ = cleanup() }()

	// Log startup info
	logger.Info("studioflow-mcp starting",
		"version", version,
		"store", cfg.Store,
		"timezone", cfg.Timezone,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Open the job store
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()
	jobs := service.NewJobService(st,
		service.WithClock(service.SystemClock{Location: cfg.Location()}),
		service.WithLogger(logger),
		service.WithMetrics(collector),
	)
	defer func() {
		logger.Info("closing store")
		_ = jobs.Close(context.Background())
	}()
	jobs.Load(ctx)

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup(&tools.Dependencies{
		Jobs:    jobs,
		Metrics: collector,
		Logger:  logger,
	})

	// Log ready state
	logger.Info("server ready, awaiting connections", "jobs", jobs.Snapshot().Len())

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
