package usecase

import (
	"context"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"github.com/coverage-microservice/internal/pkg/errors"
	"github.com/coverage-microservice/internal/pkg/utils"
	"github.com/coverage-microservice/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SiteUseCase - transmitter site registry plus coverage runs for stored sites
type SiteUseCase struct {
	siteRepo repository.SiteRepository
	coverage *CoverageUseCase
	logger   *zap.Logger
	engine   config.EngineConfig
}

// NewSiteUseCase creates the registry use case
func NewSiteUseCase(
	siteRepo repository.SiteRepository,
	coverage *CoverageUseCase,
	logger *zap.Logger,
	engine config.EngineConfig,
) *SiteUseCase {
	return &SiteUseCase{
		siteRepo: siteRepo,
		coverage: coverage,
		logger:   logger,
		engine:   engine,
	}
}

// Create registers a new transmitter site
func (uc *SiteUseCase) Create(ctx context.Context, req dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	txPower := req.TxPower
	if txPower == 0 {
		txPower = uc.engine.TxPowerDBm
	}

	site := &domain.Site{
		ID:            uuid.New(),
		Name:          req.Name,
		Lat:           req.Lat,
		Lng:           req.Lng,
		FrequencyMHz:  req.Frequency,
		AntennaHeight: req.AntennaHeight,
		TxPowerDBm:    txPower,
		Downtilt:      req.Downtilt,
		Azimuth:       req.Azimuth,
		Beamwidth:     req.Beamwidth,
		Environment:   req.Environment,
		Tags:          req.Tags,
	}

	if err := uc.siteRepo.Create(ctx, site); err != nil {
		uc.logger.Error("Failed to create site", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	uc.logger.Info("Site registered",
		zap.String("id", site.ID.String()),
		zap.String("name", site.Name))

	resp := dto.ConvertSite(site)
	return &resp, nil
}

// GetByID returns a stored site
func (uc *SiteUseCase) GetByID(ctx context.Context, id uuid.UUID) (*dto.SiteResponse, error) {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get site", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if site == nil {
		return nil, errors.ErrSiteNotFound
	}

	resp := dto.ConvertSite(site)
	return &resp, nil
}

// List returns all stored sites
func (uc *SiteUseCase) List(ctx context.Context) (*dto.SiteListResponse, error) {
	sites, err := uc.siteRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list sites", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	result := make([]dto.SiteResponse, 0, len(sites))
	for _, site := range sites {
		result = append(result, dto.ConvertSite(site))
	}

	return &dto.SiteListResponse{
		Sites: result,
		Total: len(result),
	}, nil
}

// Delete removes a stored site
func (uc *SiteUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get site", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if site == nil {
		return errors.ErrSiteNotFound
	}

	if err := uc.siteRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete site", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	uc.logger.Info("Site deleted", zap.String("id", id.String()))
	return nil
}

// ComputeCoverage runs the engine for a stored site's configuration
func (uc *SiteUseCase) ComputeCoverage(
	ctx context.Context,
	id uuid.UUID,
	req dto.SiteCoverageRequest,
) (*dto.CoverageResponse, error) {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get site", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if site == nil {
		return nil, errors.ErrSiteNotFound
	}

	if !utils.ValidateRadius(req.Radius, uc.engine.MaxRadiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if req.Resolution < 1 || req.Resolution > uc.engine.MaxResolution {
		return nil, errors.ErrInvalidResolution
	}

	samples := uc.coverage.ComputeForConfig(ctx, site.Config(), req.Resolution, req.Radius)

	return &dto.CoverageResponse{
		Samples: samples,
		Total:   len(samples),
	}, nil
}
