// Command passrush generates a synthetic passing-play dataset, analyzes
// how defensive pressure affects quarterback performance, and writes the
// console report, CSV export, summary figure and run metrics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/gcheema/passrush/internal/app"
	"github.com/gcheema/passrush/internal/config"
	"github.com/gcheema/passrush/internal/domain/gen"
	"github.com/gcheema/passrush/pkg/logger"
	"github.com/gcheema/passrush/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr directly since the logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	runID := uuid.New().String()

	params := gen.DefaultParams()
	params.PressureRate = cfg.PressureRate

	svc := app.New(
		app.WithLogger(log),
		app.WithMetrics(metrics.Get()),
		app.WithRunID(runID),
		app.WithParams(params),
		app.WithPlayCount(cfg.Plays),
		app.WithSeed(cfg.Seed),
		app.WithMinGroupSize(cfg.MinGroupSize),
		app.WithOutputDir(cfg.OutputDir),
		app.WithArtifactNames(cfg.CSVFile, cfg.ChartFile, cfg.MetricsFile),
	)

	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "analysis run failed", logger.String("run_id", runID), logger.Error(err))
		return 1
	}
	return 0
}
