package main

import (
	"io"
	"log/slog"

	"github.com/Medy04/MTN-data-scrapping/browser"
	"github.com/Medy04/MTN-data-scrapping/config"
	"github.com/Medy04/MTN-data-scrapping/metrics"
	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/prometheus/client_golang/prometheus"
)

// loadConfig reads and validates the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOrchestrator wires the rod launcher into the lookup pipeline.
func newOrchestrator(cfg *config.Config, reg prometheus.Registerer, log *slog.Logger) *scraper.Orchestrator {
	return scraper.NewOrchestrator(
		browser.NewLauncher(cfg.Browser, log),
		scraper.WithLogger(log),
		scraper.WithMetrics(metrics.New(reg)),
		scraper.WithMaxBrowsers(cfg.Browser.MaxBrowsers),
	)
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
