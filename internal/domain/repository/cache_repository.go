package repository

import (
	"context"
	"time"

	"github.com/coverage-microservice/internal/domain"
)

// CacheRepository defines the shared lookaside cache. Terrain is static,
// so elevations can be kept far longer than one request.
type CacheRepository interface {
	// Get returns the cached value or nil on a miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// GetElevation returns the cached elevation for a rounded coordinate,
	// with ok=false on a miss
	GetElevation(ctx context.Context, key domain.TerrainKey) (float64, bool, error)

	// SetElevation stores the elevation for a rounded coordinate
	SetElevation(ctx context.Context, key domain.TerrainKey, elevation float64, ttl time.Duration) error
}
