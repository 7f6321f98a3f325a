package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository wraps Redis as the shared elevation lookaside cache
func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetElevation returns the cached elevation for a rounded coordinate
func (r *cacheRepository) GetElevation(ctx context.Context, key domain.TerrainKey) (float64, bool, error) {
	data, err := r.Get(ctx, elevationKey(key))
	if err != nil {
		return 0, false, err
	}
	if data == nil {
		return 0, false, nil // Cache miss
	}

	elevation, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		r.logger.Warn("Corrupt elevation cache entry",
			zap.String("key", key.String()),
			zap.Error(err))
		return 0, false, nil
	}

	return elevation, true, nil
}

// SetElevation stores the elevation for a rounded coordinate
func (r *cacheRepository) SetElevation(ctx context.Context, key domain.TerrainKey, elevation float64, ttl time.Duration) error {
	value := strconv.FormatFloat(elevation, 'f', -1, 64)
	return r.Set(ctx, elevationKey(key), []byte(value), ttl)
}

func elevationKey(key domain.TerrainKey) string {
	return fmt.Sprintf("elev:%s", key.String())
}
