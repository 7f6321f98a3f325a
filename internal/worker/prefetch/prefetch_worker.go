package prefetch

import (
	"context"
	"time"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/worker"
	"go.uber.org/zap"
)

// ElevationPrefetchWorker periodically walks the site registry and fetches
// the elevation grid of every site through the provider. The fetched samples
// land in the shared lookaside cache, so interactive coverage requests for
// registered sites start warm.
type ElevationPrefetchWorker struct {
	*worker.BaseWorker
	siteRepo   repository.SiteRepository
	elevations *usecase.ElevationProvider
	interval   time.Duration
	resolution int
	radiusKm   float64
}

// NewElevationPrefetchWorker creates a new ElevationPrefetchWorker
func NewElevationPrefetchWorker(
	siteRepo repository.SiteRepository,
	elevations *usecase.ElevationProvider,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *ElevationPrefetchWorker {
	return &ElevationPrefetchWorker{
		BaseWorker: worker.NewBaseWorker("elevation-prefetch", logger),
		siteRepo:   siteRepo,
		elevations: elevations,
		interval:   cfg.PrefetchInterval,
		resolution: cfg.PrefetchResolution,
		radiusKm:   cfg.PrefetchRadiusKm,
	}
}

// Start runs the prefetch loop. The first sweep happens immediately, then
// every interval tick.
func (w *ElevationPrefetchWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ElevationPrefetchWorker",
		zap.Duration("interval", w.interval),
		zap.Int("resolution", w.resolution),
		zap.Float64("radius_km", w.radiusKm))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep warms the elevation cache for every registered site
func (w *ElevationPrefetchWorker) sweep(ctx context.Context) {
	logger := w.Logger()
	started := time.Now()

	sites, err := w.siteRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to list sites for prefetch", zap.Error(err))
		return
	}

	warmed := 0
	for _, site := range sites {
		select {
		case <-w.StopChan():
			return
		case <-ctx.Done():
			return
		default:
		}

		warmed += w.prefetchSite(ctx, site)
	}

	logger.Info("Prefetch sweep complete",
		zap.Int("sites", len(sites)),
		zap.Int("points", warmed),
		zap.Duration("took", time.Since(started)))
}

func (w *ElevationPrefetchWorker) prefetchSite(ctx context.Context, site *domain.Site) int {
	grid := usecase.GenerateGrid(
		domain.GeoPoint{Lat: site.Lat, Lng: site.Lng},
		site.Azimuth,
		site.Beamwidth,
		w.resolution,
		w.radiusKm,
	)

	points := make([]domain.GeoPoint, 0, len(grid)+1)
	points = append(points, domain.GeoPoint{Lat: site.Lat, Lng: site.Lng})
	points = append(points, grid...)

	terrain := domain.NewTerrainCache(len(points))
	w.elevations.FetchElevations(ctx, points, terrain)

	return terrain.Len()
}
