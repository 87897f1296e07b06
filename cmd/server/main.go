/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave tracker server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (.env + environment)
  3. Build logger, metrics registry and in-memory directory
  4. Start the low-balance report scheduler (unless disabled)
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides LEAVE_HTTP_PORT)
  -env     Path to a .env file (default: .env when present)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the report scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Flush the logger

EXAMPLES:
  # Run with defaults
  ./server

  # Run on different port with a custom env file
  ./server -port=3000 -env=./deploy/leave.env

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - leave/directory.go: Domain entry point
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/warp/leave-tracker/api"
	"github.com/warp/leave-tracker/config"
	"github.com/warp/leave-tracker/leave"
	"github.com/warp/leave-tracker/leave/store"
	"github.com/warp/leave-tracker/logger"
	"github.com/warp/leave-tracker/metrics"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides LEAVE_HTTP_PORT)")
	envFile := flag.String("env", "", "Path to .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.Must(logger.New(cfg.Log.Level))
	defer log.Sync()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Directory
	dir := leave.NewDirectory(store.NewMemory(),
		leave.WithLogger(logger.Named(log, "directory")),
		leave.WithObserver(m),
		leave.WithRules(leave.MaxConsecutiveDays(cfg.Leave.MaxConsecutiveDays)),
	)

	// Scheduler
	var scheduler *api.ReportScheduler
	if cfg.Report.Cron != "" {
		scheduler, err = api.NewReportScheduler(dir, cfg.Report.Cron, cfg.Report.LowBalanceThreshold, logger.Named(log, "scheduler"))
		if err != nil {
			log.Fatal("invalid report schedule", zap.Error(err))
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	// Router
	handler := api.NewHandler(dir, cfg.Report.LowBalanceThreshold, logger.Named(log, "api"))
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     m,
		Gatherer:    reg,
		Logger:      logger.Named(log, "http"),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
