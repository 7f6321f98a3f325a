package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/coverage-microservice/internal/domain"
	appErrors "github.com/coverage-microservice/internal/pkg/errors"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/usecase/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSiteUseCase(siteRepo *MockSiteRepository, elevRepo *MockElevationRepository) *usecase.SiteUseCase {
	logger := zap.NewNop()
	coverage := newCoverageUseCase(elevRepo)
	return usecase.NewSiteUseCase(siteRepo, coverage, logger, engineConfig())
}

func storedSite(id uuid.UUID) *domain.Site {
	return &domain.Site{
		ID:            id,
		Name:          "north-ridge-1",
		Lat:           0,
		Lng:           0,
		FrequencyMHz:  900,
		AntennaHeight: 30,
		TxPowerDBm:    43,
		Downtilt:      0,
		Azimuth:       0,
		Beamwidth:     10,
		Environment:   domain.EnvironmentRural,
	}
}

func TestSiteUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and engine default tx power", func(t *testing.T) {
		mockRepo := &MockSiteRepository{}
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		resp, err := uc.Create(ctx, dto.CreateSiteRequest{
			Name:          "north-ridge-1",
			Lat:           41.38,
			Lng:           2.17,
			Frequency:     1800,
			AntennaHeight: 25,
			Beamwidth:     65,
			Environment:   domain.EnvironmentUrban,
			Tags:          []string{"macro", "pilot"},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, 43.0, resp.TxPower)
		assert.Equal(t, []string{"macro", "pilot"}, resp.Tags)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		uc := newSiteUseCase(&MockSiteRepository{}, &MockElevationRepository{})

		_, err := uc.Create(ctx, dto.CreateSiteRequest{
			Name:          "bad",
			Lat:           120,
			Lng:           0,
			Frequency:     900,
			AntennaHeight: 30,
			Beamwidth:     65,
			Environment:   domain.EnvironmentRural,
		})
		assert.Equal(t, appErrors.ErrInvalidCoordinates, err)
	})

	t.Run("maps repository failure to database error", func(t *testing.T) {
		mockRepo := &MockSiteRepository{}
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(errors.New("connection refused")).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		_, err := uc.Create(ctx, dto.CreateSiteRequest{
			Name:          "north-ridge-1",
			Lat:           0,
			Lng:           0,
			Frequency:     900,
			AntennaHeight: 30,
			Beamwidth:     65,
			Environment:   domain.EnvironmentRural,
		})
		assert.Equal(t, appErrors.ErrDatabaseError, err)
	})
}

func TestSiteUseCase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored site", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(storedSite(id), nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		resp, err := uc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "north-ridge-1", resp.Name)
	})

	t.Run("missing site yields not found", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		_, err := uc.GetByID(ctx, id)
		assert.Equal(t, appErrors.ErrSiteNotFound, err)
	})
}

func TestSiteUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing site", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(storedSite(id), nil).Once()
		mockRepo.On("Delete", mock.Anything, id).Return(nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		assert.NoError(t, uc.Delete(ctx, id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing site yields not found", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		assert.Equal(t, appErrors.ErrSiteNotFound, uc.Delete(ctx, id))
	})
}

func TestSiteUseCase_ComputeCoverage(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the engine with the stored configuration", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(storedSite(id), nil).Once()

		elevRepo := &MockElevationRepository{}
		elevRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return([]float64{0, 0, 0, 0, 0}, nil).Once()

		uc := newSiteUseCase(mockRepo, elevRepo)

		resp, err := uc.ComputeCoverage(ctx, id, dto.SiteCoverageRequest{
			Resolution: 2,
			Radius:     1.0,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Samples, 4)

		for _, sample := range resp.Samples {
			assert.GreaterOrEqual(t, sample.RSRP, domain.RSRPFloor)
			assert.LessOrEqual(t, sample.RSRP, domain.RSRPCeiling)
		}
	})

	t.Run("missing site yields not found", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		_, err := uc.ComputeCoverage(ctx, id, dto.SiteCoverageRequest{Resolution: 2, Radius: 1.0})
		assert.Equal(t, appErrors.ErrSiteNotFound, err)
	})

	t.Run("rejects invalid radius for stored site", func(t *testing.T) {
		id := uuid.New()
		mockRepo := &MockSiteRepository{}
		mockRepo.On("GetByID", mock.Anything, id).Return(storedSite(id), nil).Once()

		uc := newSiteUseCase(mockRepo, &MockElevationRepository{})

		_, err := uc.ComputeCoverage(ctx, id, dto.SiteCoverageRequest{Resolution: 2, Radius: -1})
		assert.Equal(t, appErrors.ErrInvalidRadius, err)
	})
}
