package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	appErrors "github.com/coverage-microservice/internal/pkg/errors"
	"github.com/coverage-microservice/internal/propagation"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/usecase/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func engineConfig() config.EngineConfig {
	return config.EngineConfig{
		TxPowerDBm:    43,
		MobileHeight:  1.5,
		MaxResolution: 100,
		MaxRadiusKm:   50,
	}
}

func newCoverageUseCase(repo *MockElevationRepository) *usecase.CoverageUseCase {
	logger := zap.NewNop()
	provider := usecase.NewElevationProvider(repo, nil, logger, providerConfig())
	return usecase.NewCoverageUseCase(provider, logger, engineConfig())
}

func TestGenerateGrid(t *testing.T) {
	site := domain.GeoPoint{Lat: 41.0, Lng: 2.0}

	t.Run("produces resolution squared points inside the sector", func(t *testing.T) {
		const resolution = 5
		const radius = 3.0
		const azimuth = 90.0
		const beamwidth = 60.0

		grid := usecase.GenerateGrid(site, azimuth, beamwidth, resolution, radius)
		require.Len(t, grid, resolution*resolution)

		for _, p := range grid {
			dLat := p.Lat - site.Lat
			dLng := p.Lng - site.Lng
			distance := math.Sqrt(dLat*dLat+dLng*dLng) * 111

			assert.LessOrEqual(t, distance, radius+1e-9)
			assert.Greater(t, distance, 0.0)

			// Bearing measured from north, matching the polar projection
			bearing := math.Atan2(dLng, dLat) * 180 / math.Pi
			assert.GreaterOrEqual(t, bearing, azimuth-beamwidth/2-1e-9)
			assert.LessOrEqual(t, bearing, azimuth+beamwidth/2+1e-9)
		}
	})

	t.Run("resolution one samples the sector center at full radius", func(t *testing.T) {
		grid := usecase.GenerateGrid(site, 0, 10, 1, 1.0)
		require.Len(t, grid, 1)

		assert.InDelta(t, site.Lat+1.0/111, grid[0].Lat, 1e-12)
		assert.InDelta(t, site.Lng, grid[0].Lng, 1e-12)
	})
}

func TestCoverageUseCase_Compute(t *testing.T) {
	ctx := context.Background()

	flatRequest := func(resolution int) dto.CoverageRequest {
		return dto.CoverageRequest{
			Site: dto.SitePoint{Lat: 0, Lng: 0},
			Model: dto.PropagationParams{
				Frequency:     900,
				AntennaHeight: 30,
				Downtilt:      0,
				Azimuth:       0,
				Beamwidth:     10,
				Environment:   domain.EnvironmentRural,
			},
			Resolution: resolution,
			Radius:     1.0,
		}
	}

	t.Run("flat rural terrain single point", func(t *testing.T) {
		mockRepo := &MockElevationRepository{}
		// Site plus one grid point, all at sea level
		mockRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return([]float64{0, 0}, nil).Once()

		uc := newCoverageUseCase(mockRepo)

		resp, err := uc.Compute(ctx, flatRequest(1))
		require.NoError(t, err)
		require.Len(t, resp.Samples, 1)

		sample := resp.Samples[0]
		assert.InDelta(t, 1.0/111, sample.Lat, 1e-9) // ~1 km north
		assert.InDelta(t, 0.0, sample.Lng, 1e-9)

		// Clear LOS: tx power minus Hata loss minus rural shadowing
		// Effective site height is antenna height plus site elevation (30 m)
		distance := propagation.FlatDistanceKm(
			domain.GeoPoint{Lat: 0, Lng: 0},
			domain.GeoPoint{Lat: sample.Lat, Lng: sample.Lng},
		)
		expected := 43 - propagation.HataPathLoss(900, 30, distance) - 1
		assert.InDelta(t, expected, sample.RSRP, 1e-6)
	})

	t.Run("terrain spike at path midpoint blocks the far point", func(t *testing.T) {
		// Resolution 2 along a narrow sector: the inner grid point at the
		// sector's left bearing sits exactly at the midpoint of the path to
		// the outer point on the same bearing. Give it a 50 m spike.
		mockRepo := &MockElevationRepository{}
		mockRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return([]float64{0, 50, 0, 0, 0}, nil).Once()

		uc := newCoverageUseCase(mockRepo)

		req := flatRequest(2)
		req.Radius = 1.004 // keeps the path at an even 100 segments

		resp, err := uc.Compute(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.Samples, 4)

		// Order: (inner, left), (inner, right), (outer, left), (outer, right)
		blocked := resp.Samples[2]
		assert.Greater(t, blocked.RSRP, domain.RSRPFloor)
		assert.Less(t, blocked.RSRP, domain.RSRPFloor+20)

		clear := resp.Samples[3]
		assert.Greater(t, clear.RSRP, domain.RSRPFloor+20)
	})

	t.Run("every sample stays within the rsrp bounds", func(t *testing.T) {
		mockRepo := &MockElevationRepository{}
		elevations := make([]float64, 10)
		for i := range elevations {
			elevations[i] = float64(i * 40) // rough terrain
		}
		mockRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return(elevations, nil).Once()

		uc := newCoverageUseCase(mockRepo)

		resp, err := uc.Compute(ctx, flatRequest(3))
		require.NoError(t, err)
		require.Len(t, resp.Samples, 9)

		for _, sample := range resp.Samples {
			assert.GreaterOrEqual(t, sample.RSRP, domain.RSRPFloor)
			assert.LessOrEqual(t, sample.RSRP, domain.RSRPCeiling)
		}
	})

	t.Run("elevation source failure still completes", func(t *testing.T) {
		mockRepo := &MockElevationRepository{}
		mockRepo.On("GetElevations", mock.Anything, mock.Anything).
			Return(nil, errors.New("upstream down"))

		uc := newCoverageUseCase(mockRepo)

		resp, err := uc.Compute(ctx, flatRequest(2))
		require.NoError(t, err)
		require.Len(t, resp.Samples, 4)

		// Flat-earth fallback: all paths clear over 0 m terrain
		for _, sample := range resp.Samples {
			assert.Greater(t, sample.RSRP, domain.RSRPFloor)
		}
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		uc := newCoverageUseCase(&MockElevationRepository{})

		req := flatRequest(1)
		req.Site.Lat = 91

		_, err := uc.Compute(ctx, req)
		assert.Equal(t, appErrors.ErrInvalidCoordinates, err)
	})

	t.Run("rejects excessive radius", func(t *testing.T) {
		uc := newCoverageUseCase(&MockElevationRepository{})

		req := flatRequest(1)
		req.Radius = 500

		_, err := uc.Compute(ctx, req)
		assert.Equal(t, appErrors.ErrInvalidRadius, err)
	})

	t.Run("rejects excessive resolution", func(t *testing.T) {
		uc := newCoverageUseCase(&MockElevationRepository{})

		req := flatRequest(1)
		req.Resolution = 101

		_, err := uc.Compute(ctx, req)
		assert.Equal(t, appErrors.ErrInvalidResolution, err)
	})
}
