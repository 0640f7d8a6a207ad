package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Medy04/MTN-data-scrapping/api"
	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API on MTN_HOST:MTN_PORT (PORT and 3003 are the fallbacks).

Endpoints: POST /scrape-mtn, GET /health, GET /metrics, GET /.
SIGINT and SIGTERM drain in-flight lookups before exiting.`,
	RunE: runServe,
}

// shutdownGrace covers a full lookup: navigation, waits and one retry.
const shutdownGrace = 90 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// ── 2. Initialise structured logging ────────────────────────────
	log := initLogger(cfg.Log, os.Stdout)
	log.Info("mtnbalance starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"portal", cfg.Session.PortalURL,
		"maxBrowsers", cfg.Browser.MaxBrowsers,
	)

	// ── 3. Metrics registry ─────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ── 4. Lookup pipeline ──────────────────────────────────────────
	orch := newOrchestrator(cfg, reg, log)
	base := cfg.SessionConfig(scraper.InputCandidates, scraper.ButtonCandidates)

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(orch, base, cfg, reg, time.Now(), log)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", addr, "url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", "error", err)
	} else {
		log.Info("HTTP server drained gracefully")
	}

	slog.Info("mtnbalance stopped")
	return nil
}
