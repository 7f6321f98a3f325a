package prefetch_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/worker/prefetch"
)

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

func newWorker(siteRepo *MockSiteRepository, elevRepo *MockElevationRepository) *prefetch.ElevationPrefetchWorker {
	logger := zap.NewNop()

	provider := usecase.NewElevationProvider(elevRepo, nil, logger, &config.ElevationConfig{
		BatchSize:  300,
		MaxRetries: 2,
		RetryDelay: 0,
		CacheTTL:   time.Hour,
	})

	return prefetch.NewElevationPrefetchWorker(siteRepo, provider, config.WorkerConfig{
		Enabled:            true,
		PrefetchInterval:   time.Hour,
		PrefetchResolution: 2,
		PrefetchRadiusKm:   1.0,
	}, logger)
}

func registrySite() *domain.Site {
	return &domain.Site{
		ID:            uuid.New(),
		Name:          "north-ridge-1",
		Lat:           41.38,
		Lng:           2.17,
		FrequencyMHz:  900,
		AntennaHeight: 30,
		TxPowerDBm:    43,
		Beamwidth:     65,
		Environment:   domain.EnvironmentUrban,
	}
}

func TestElevationPrefetchWorker(t *testing.T) {
	t.Run("first sweep fetches every site grid", func(t *testing.T) {
		siteRepo := &MockSiteRepository{}
		siteRepo.On("List", mock.Anything).
			Return([]*domain.Site{registrySite()}, nil)

		fetched := make(chan struct{}, 1)
		elevRepo := &MockElevationRepository{}
		// Site point plus a 2x2 grid
		elevRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return([]float64{10, 11, 12, 13, 14}, nil).Once().
			Run(func(mock.Arguments) { fetched <- struct{}{} })

		w := newWorker(siteRepo, elevRepo)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Start(ctx) }()

		// The immediate sweep runs before the first tick
		select {
		case <-fetched:
		case <-time.After(time.Second):
			t.Fatal("prefetch sweep never fetched elevations")
		}

		require.NoError(t, w.Stop())
		assert.NoError(t, <-done)
		cancel()

		elevRepo.AssertExpectations(t)
		siteRepo.AssertExpectations(t)
	})

	t.Run("registry failure does not kill the loop", func(t *testing.T) {
		listed := make(chan struct{}, 1)
		siteRepo := &MockSiteRepository{}
		siteRepo.On("List", mock.Anything).
			Return(nil, assert.AnError).
			Run(func(mock.Arguments) {
				select {
				case listed <- struct{}{}:
				default:
				}
			})

		elevRepo := &MockElevationRepository{}

		w := newWorker(siteRepo, elevRepo)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Start(ctx) }()

		select {
		case <-listed:
		case <-time.After(time.Second):
			t.Fatal("prefetch sweep never queried the registry")
		}

		require.NoError(t, w.Stop())
		assert.NoError(t, <-done)
		cancel()

		elevRepo.AssertNotCalled(t, "GetElevations")
	})
}
