package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hmori/jflash/internal/api"
	"github.com/hmori/jflash/internal/config"
	"github.com/hmori/jflash/internal/db"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/repository/sqlite"
	"github.com/hmori/jflash/internal/scheduler"
	"github.com/hmori/jflash/internal/services"
	"github.com/hmori/jflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("JFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_device=%s", cfg.DefaultDevice)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("snapshot_hour=%d", cfg.SnapshotHour)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	studyLogRepo := sqlite.NewStudyLogRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Initialize services
	vocabService := services.NewVocabService(vocabRepo, reviewRepo)
	reviewService := services.NewReviewService(vocabRepo, reviewRepo, studyLogRepo)
	statsService := services.NewStatsService(vocabRepo, reviewRepo, studyLogRepo, statsRepo)
	transferService := services.NewTransferService(vocabRepo, reviewRepo)

	// Initialize worker pool and daily snapshot scheduler
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	sched := scheduler.New(importPool)

	srv := &api.Server{
		VocabService:    vocabService,
		ReviewService:   reviewService,
		StatsService:    statsService,
		TransferService: transferService,
		ImportPool:      importPool,
		DefaultDevice:   cfg.DefaultDevice,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)
	if err := sched.Start(cfg.SnapshotHour, &worker.SnapshotStatsJob{Stats: statsService}); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("===========================================")
	log.Info("JFlash Server Stopped")
	log.Info("===========================================")
}
