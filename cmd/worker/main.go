package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/infrastructure/elevation"
	"github.com/coverage-microservice/internal/pkg/logger"
	"github.com/coverage-microservice/internal/repository/cache"
	"github.com/coverage-microservice/internal/repository/postgres"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/worker"
	"github.com/coverage-microservice/internal/worker/prefetch"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Elevation Prefetch Worker")
	log.Info("Configuration loaded",
		zap.Duration("prefetch_interval", cfg.Worker.PrefetchInterval),
		zap.Int("prefetch_resolution", cfg.Worker.PrefetchResolution),
		zap.Float64("prefetch_radius_km", cfg.Worker.PrefetchRadiusKm))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	siteRepo := postgres.NewSiteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	elevationRepo := elevation.NewClient(&cfg.Elevation, log)

	// 6. Initialize the elevation provider backed by the shared cache
	elevationProvider := usecase.NewElevationProvider(
		elevationRepo,
		cacheRepo,
		log,
		&cfg.Elevation,
	)

	// 7. Initialize workers
	prefetchWorker := prefetch.NewElevationPrefetchWorker(
		siteRepo,
		elevationProvider,
		cfg.Worker,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(prefetchWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
