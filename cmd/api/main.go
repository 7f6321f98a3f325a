package main

// @title Coverage Microservice API
// @version 1.0.0
// @description Microservice for radio coverage estimation around LTE transmitter sites. Computes RSRP heatmaps over a directional grid using terrain elevation, knife-edge diffraction and the COST-231 Hata propagation model.
// @description
// @description Main capabilities:
// @description - RSRP coverage grids for ad-hoc site and propagation parameters
// @description - Registry of transmitter sites with stored radio configuration
// @description - Coverage computation for registered sites
// @description - Terrain elevation acquisition with batching, retries and caching

// @contact.name API Support
// @contact.email support@coverage-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coverage-microservice/docs"
	"github.com/coverage-microservice/internal/config"
	httpDelivery "github.com/coverage-microservice/internal/delivery/http"
	"github.com/coverage-microservice/internal/delivery/http/handler"
	"github.com/coverage-microservice/internal/infrastructure/elevation"
	"github.com/coverage-microservice/internal/pkg/logger"
	"github.com/coverage-microservice/internal/repository/cache"
	"github.com/coverage-microservice/internal/repository/postgres"
	"github.com/coverage-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Coverage Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL (site registry)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis (elevation lookaside cache)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	siteRepo := postgres.NewSiteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	elevationRepo := elevation.NewClient(&cfg.Elevation, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	elevationProvider := usecase.NewElevationProvider(
		elevationRepo,
		cacheRepo,
		log,
		&cfg.Elevation,
	)

	coverageUC := usecase.NewCoverageUseCase(
		elevationProvider,
		log,
		cfg.Engine,
	)

	siteUC := usecase.NewSiteUseCase(
		siteRepo,
		coverageUC,
		log,
		cfg.Engine,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	coverageHandler := handler.NewCoverageHandler(coverageUC, log)
	siteHandler := handler.NewSiteHandler(siteUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		coverageHandler,
		siteHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
