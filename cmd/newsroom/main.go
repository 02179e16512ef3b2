package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azure/newsroom-desk/internal/api"
	"github.com/azure/newsroom-desk/internal/config"
	"github.com/azure/newsroom-desk/internal/digest"
	"github.com/azure/newsroom-desk/internal/metrics"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/notifications"
	"github.com/azure/newsroom-desk/internal/scheduler"
	"github.com/azure/newsroom-desk/internal/sources"
	"github.com/azure/newsroom-desk/internal/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting newsroom desk")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	var source sources.Source = sources.NewFixtureSource(cfg.FixturesPath)
	dataset, err := sources.Load(ctx, source)
	cancel()
	if err != nil {
		logrus.Fatalf("Failed to load dataset: %v", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	board := newsroom.NewBoard(dataset.Events,
		newsroom.WithRecorder(collector),
		newsroom.WithFactChecker(newsroom.NewFactChecker(cfg.FactCheckDelay, nil, collector)),
	)

	archive, err := newArchive(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	notificationService := notifications.NewService(cfg)
	if !cfg.NotificationsEnabled() {
		logrus.Warn("No notification channel configured; digests will only be archived")
	}

	digestService := digest.NewService(cfg, board, archive, notificationService, dataset.Presets)

	schedulerService := scheduler.NewService(cfg, digestService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	apiServer := api.NewServer(api.Config{
		Board:   board,
		Digest:  digestService,
		Archive: archive,
		Sidebar: api.Sidebar{
			Trends:  dataset.Trends,
			Presets: dataset.Presets,
			Plugins: dataset.Plugins,
		},
		Metrics:                collector,
		Gatherer:               registry,
		FactCheckRatePerMinute: cfg.FactCheckRatePerMinute,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	board.OnDismiss()

	logrus.Info("Server exited")
}

// newArchive picks blob storage when an account is configured
func newArchive(cfg *config.Config) (storage.StorageInterface, error) {
	if cfg.StorageAccount == "" {
		logrus.Info("AZURE_STORAGE_ACCOUNT not set, archiving digests in memory")
		return storage.NewMemoryStorage(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
}
