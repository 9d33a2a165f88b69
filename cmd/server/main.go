package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"canteen/internal/config"
	"canteen/internal/correction"
	"canteen/internal/db"
	"canteen/internal/jobs"
	"canteen/internal/metrics"
	"canteen/internal/searchlog"
	"canteen/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	setupLogger(cfg)

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		slog.Error("failed to load config file", "error", err)
		os.Exit(1)
	}

	// Search log storage
	var store searchlog.Store
	if cfg.UsesDatabase() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations completed successfully")
		store = db.NewTermStore(database)
	} else {
		slog.Info("using workbook search log", "path", cfg.SearchLogPath)
		store = searchlog.NewWorkbookStore(cfg.SearchLogPath)
	}

	engine := correction.New(
		yamlCfg.CorrectionThreshold(cfg.CorrectionThreshold),
		yamlCfg.Aliases(),
	)
	session := searchlog.NewSession(store, engine)

	metrics.Init(prometheus.DefaultRegisterer, store)

	if cfg.IntegrityCheckInterval > 0 {
		checker := jobs.NewIntegrityChecker(store, cfg.IntegrityCheckInterval)
		go checker.Start(ctx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(session, prometheus.DefaultGatherer)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.ServerAddr, "threshold", engine.Threshold())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevelValue()}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
