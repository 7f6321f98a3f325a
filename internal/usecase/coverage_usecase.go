package usecase

import (
	"context"
	"math"
	"time"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/pkg/errors"
	"github.com/coverage-microservice/internal/pkg/utils"
	"github.com/coverage-microservice/internal/propagation"
	"github.com/coverage-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

const kmPerDegree = 111.0

// CoverageUseCase - the coverage computation engine. One call generates the
// directional grid, acquires terrain for it and estimates RSRP per point.
type CoverageUseCase struct {
	elevations *ElevationProvider
	logger     *zap.Logger
	engine     config.EngineConfig
}

// NewCoverageUseCase creates the engine
func NewCoverageUseCase(
	elevations *ElevationProvider,
	logger *zap.Logger,
	engine config.EngineConfig,
) *CoverageUseCase {
	return &CoverageUseCase{
		elevations: elevations,
		logger:     logger,
		engine:     engine,
	}
}

// Compute runs one coverage estimation request
func (uc *CoverageUseCase) Compute(ctx context.Context, req dto.CoverageRequest) (*dto.CoverageResponse, error) {
	if !utils.ValidateCoordinates(req.Site.Lat, req.Site.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.Radius, uc.engine.MaxRadiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if req.Resolution < 1 || req.Resolution > uc.engine.MaxResolution {
		return nil, errors.ErrInvalidResolution
	}

	site := domain.SiteConfig{
		Site:          domain.GeoPoint{Lat: req.Site.Lat, Lng: req.Site.Lng},
		FrequencyMHz:  req.Model.Frequency,
		AntennaHeight: req.Model.AntennaHeight,
		TxPowerDBm:    uc.engine.TxPowerDBm,
		Downtilt:      req.Model.Downtilt,
		Azimuth:       req.Model.Azimuth,
		Beamwidth:     req.Model.Beamwidth,
		Environment:   req.Model.Environment,
	}

	samples := uc.compute(ctx, site, req.Resolution, req.Radius)

	return &dto.CoverageResponse{
		Samples: samples,
		Total:   len(samples),
	}, nil
}

// ComputeForConfig runs the engine for an already validated configuration,
// used by the site registry and the prefetch worker.
func (uc *CoverageUseCase) ComputeForConfig(
	ctx context.Context,
	site domain.SiteConfig,
	resolution int,
	radiusKm float64,
) []domain.CoverageSample {
	return uc.compute(ctx, site, resolution, radiusKm)
}

func (uc *CoverageUseCase) compute(
	ctx context.Context,
	site domain.SiteConfig,
	resolution int,
	radiusKm float64,
) []domain.CoverageSample {
	started := time.Now()

	grid := GenerateGrid(site.Site, site.Azimuth, site.Beamwidth, resolution, radiusKm)

	// The terrain cache lives for exactly one computation, so concurrent
	// requests never observe each other's in-flight data
	terrain := domain.NewTerrainCache(len(grid) + 1)

	// One provider call for the site and the whole grid
	points := make([]domain.GeoPoint, 0, len(grid)+1)
	points = append(points, site.Site)
	points = append(points, grid...)
	elevations := uc.elevations.FetchElevations(ctx, points, terrain)

	siteElevation := elevations[0]
	pointElevations := elevations[1:]

	// Make sure LOS sampling sees every grid sample even for points the
	// provider could not cache
	for i, point := range grid {
		terrain.Set(point, pointElevations[i])
	}

	siteHeight := math.Max(1, site.AntennaHeight+siteElevation)

	samples := make([]domain.CoverageSample, 0, len(grid))
	for i, point := range grid {
		pointHeight := uc.engine.MobileHeight + pointElevations[i]
		distanceKm := propagation.FlatDistanceKm(site.Site, point)

		los := propagation.AnalyzeLOS(site.Site, point, siteHeight, pointHeight, site.FrequencyMHz, terrain)
		rsrp := propagation.RSRP(
			distanceKm,
			siteHeight, pointHeight,
			site.FrequencyMHz,
			site.TxPowerDBm, site.Downtilt,
			site.Environment,
			los,
		)

		samples = append(samples, domain.CoverageSample{
			Lat:  point.Lat,
			Lng:  point.Lng,
			RSRP: rsrp,
		})
	}

	uc.logger.Info("Coverage computed",
		zap.Int("grid_points", len(grid)),
		zap.Int("terrain_samples", terrain.Len()),
		zap.Float64("radius_km", radiusKm),
		zap.Duration("elapsed", time.Since(started)))

	return samples
}

// GenerateGrid produces resolution^2 points across the antenna's angular
// sector: resolution radial distances evenly spaced in (0, radius] crossed
// with resolution bearings spanning [azimuth-beamwidth/2, azimuth+beamwidth/2].
// A resolution of 1 samples the sector center at full radius.
func GenerateGrid(site domain.GeoPoint, azimuthDeg, beamwidthDeg float64, resolution int, radiusKm float64) []domain.GeoPoint {
	azimuthRad := azimuthDeg * math.Pi / 180
	halfBeamRad := beamwidthDeg / 2 * math.Pi / 180

	points := make([]domain.GeoPoint, 0, resolution*resolution)
	for ri := 1; ri <= resolution; ri++ {
		r := radiusKm * float64(ri) / float64(resolution)

		for ai := 0; ai < resolution; ai++ {
			var angle float64
			if resolution == 1 {
				angle = azimuthRad
			} else {
				angle = azimuthRad - halfBeamRad +
					2*halfBeamRad*float64(ai)/float64(resolution-1)
			}

			points = append(points, domain.GeoPoint{
				Lat: site.Lat + (r/kmPerDegree)*math.Cos(angle),
				Lng: site.Lng + (r/kmPerDegree)*math.Sin(angle),
			})
		}
	}
	return points
}
