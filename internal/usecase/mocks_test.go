package usecase_test

import (
	"context"
	"time"

	"github.com/coverage-microservice/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockElevationRepository is a mock of ElevationRepository
type MockElevationRepository struct {
	mock.Mock
}

func (m *MockElevationRepository) GetElevations(ctx context.Context, points []domain.GeoPoint) ([]float64, error) {
	args := m.Called(ctx, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetElevation(ctx context.Context, key domain.TerrainKey) (float64, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetElevation(ctx context.Context, key domain.TerrainKey, elevation float64, ttl time.Duration) error {
	args := m.Called(ctx, key, elevation, ttl)
	return args.Error(0)
}

// MockSiteRepository is a mock of SiteRepository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) Create(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Site), args.Error(1)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
