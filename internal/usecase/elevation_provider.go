package usecase

import (
	"context"
	"time"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// ElevationProvider resolves terrain elevations for coverage grids. Lookups
// are deduplicated by rounded coordinate, served from the per-request
// terrain cache, then the shared Redis lookaside, and only then batched to
// the external source with bounded retries. The provider never fails a
// request: points the source cannot resolve degrade to 0 m.
type ElevationProvider struct {
	elevationRepo repository.ElevationRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	batchSize     int
	maxRetries    int
	retryDelay    time.Duration
	cacheTTL      time.Duration
	parallel      bool
	maxParallel   int
}

// NewElevationProvider creates the provider. cacheRepo may be nil, which
// disables the shared lookaside and leaves only per-request caching.
func NewElevationProvider(
	elevationRepo repository.ElevationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cfg *config.ElevationConfig,
) *ElevationProvider {
	return &ElevationProvider{
		elevationRepo: elevationRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		batchSize:     cfg.BatchSize,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		cacheTTL:      cfg.CacheTTL,
		parallel:      cfg.Parallel,
		maxParallel:   cfg.MaxParallel,
	}
}

// FetchElevations returns one elevation per input point, in input order.
// Resolved samples are stored in the request's terrain cache; points still
// missing after retries default to 0 m and stay uncached so later requests
// re-attempt them.
func (p *ElevationProvider) FetchElevations(
	ctx context.Context,
	points []domain.GeoPoint,
	terrain *domain.TerrainCache,
) []float64 {
	// Deduplicate by rounded coordinate, keeping first-seen order
	seen := make(map[domain.TerrainKey]struct{}, len(points))
	var uncached []domain.GeoPoint
	for _, point := range points {
		key := point.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := terrain.Get(point); ok {
			continue
		}
		if p.lookasideGet(ctx, point, terrain) {
			continue
		}
		uncached = append(uncached, point)
	}

	for attempt := 1; len(uncached) > 0 && attempt <= p.maxRetries; attempt++ {
		p.logger.Debug("Fetching elevations",
			zap.Int("points", len(uncached)),
			zap.Int("attempt", attempt))

		if p.parallel {
			p.fetchBatchesParallel(ctx, uncached, terrain)
		} else {
			for start := 0; start < len(uncached); start += p.batchSize {
				end := start + p.batchSize
				if end > len(uncached) {
					end = len(uncached)
				}
				p.fetchBatch(ctx, uncached[start:end], terrain)
			}
		}

		// Keep only the points a failed batch left unresolved
		var missing []domain.GeoPoint
		for _, point := range uncached {
			if _, ok := terrain.Get(point); !ok {
				missing = append(missing, point)
			}
		}
		uncached = missing

		if len(uncached) > 0 && attempt < p.maxRetries {
			p.logger.Warn("Elevation points still missing, retrying",
				zap.Int("missing", len(uncached)),
				zap.Duration("delay", p.retryDelay))
			select {
			case <-ctx.Done():
				attempt = p.maxRetries // give up, degrade to defaults
			case <-time.After(p.retryDelay):
			}
		}
	}

	if len(uncached) > 0 {
		p.logger.Warn("Elevation lookups exhausted, degrading to 0 m",
			zap.Int("unresolved", len(uncached)))
	}

	// Expand back to input order and multiplicity
	elevations := make([]float64, len(points))
	for i, point := range points {
		elevations[i] = terrain.GetOrDefault(point)
	}
	return elevations
}

// fetchBatch resolves one batch against the external source. Failures are
// logged and swallowed; the retry loop decides what happens next.
func (p *ElevationProvider) fetchBatch(
	ctx context.Context,
	batch []domain.GeoPoint,
	terrain *domain.TerrainCache,
) {
	elevations, err := p.elevationRepo.GetElevations(ctx, batch)
	if err != nil {
		p.logger.Warn("Elevation batch failed, using default elevation",
			zap.Int("batch_size", len(batch)),
			zap.Error(err))
		return
	}

	for i, point := range batch {
		terrain.Set(point, elevations[i])
		p.lookasideSet(ctx, point, elevations[i])
	}
}

// fetchBatchesParallel fans batches out to a bounded worker pool. Results
// land in the terrain cache keyed by coordinate, so ordering is unaffected.
func (p *ElevationProvider) fetchBatchesParallel(
	ctx context.Context,
	points []domain.GeoPoint,
	terrain *domain.TerrainCache,
) {
	type batchResult struct {
		batch      []domain.GeoPoint
		elevations []float64
		err        error
	}

	var batches [][]domain.GeoPoint
	for start := 0; start < len(points); start += p.batchSize {
		end := start + p.batchSize
		if end > len(points) {
			end = len(points)
		}
		batches = append(batches, points[start:end])
	}

	jobs := make(chan []domain.GeoPoint, len(batches))
	results := make(chan batchResult, len(batches))

	workers := p.maxParallel
	if workers > len(batches) {
		workers = len(batches)
	}

	for w := 0; w < workers; w++ {
		go func() {
			for batch := range jobs {
				elevations, err := p.elevationRepo.GetElevations(ctx, batch)
				results <- batchResult{batch: batch, elevations: elevations, err: err}
			}
		}()
	}

	for _, batch := range batches {
		jobs <- batch
	}
	close(jobs)

	// The terrain cache is not safe for concurrent writers, so all stores
	// happen here on the caller's goroutine
	for range batches {
		res := <-results
		if res.err != nil {
			p.logger.Warn("Elevation batch failed, using default elevation",
				zap.Int("batch_size", len(res.batch)),
				zap.Error(res.err))
			continue
		}
		for i, point := range res.batch {
			terrain.Set(point, res.elevations[i])
			p.lookasideSet(ctx, point, res.elevations[i])
		}
	}
}

// lookasideGet checks the shared Redis cache. Errors are treated as misses.
func (p *ElevationProvider) lookasideGet(
	ctx context.Context,
	point domain.GeoPoint,
	terrain *domain.TerrainCache,
) bool {
	if p.cacheRepo == nil {
		return false
	}

	elevation, ok, err := p.cacheRepo.GetElevation(ctx, point.Key())
	if err != nil || !ok {
		return false
	}

	terrain.Set(point, elevation)
	return true
}

// lookasideSet stores a resolved sample in the shared cache, best effort.
func (p *ElevationProvider) lookasideSet(ctx context.Context, point domain.GeoPoint, elevation float64) {
	if p.cacheRepo == nil {
		return
	}
	if err := p.cacheRepo.SetElevation(ctx, point.Key(), elevation, p.cacheTTL); err != nil {
		p.logger.Debug("Failed to store elevation in lookaside cache",
			zap.String("key", point.Key().String()),
			zap.Error(err))
	}
}
