package repository

import (
	"context"

	"github.com/coverage-microservice/internal/domain"
)

// ElevationRepository defines access to the external elevation data source
type ElevationRepository interface {
	// GetElevations returns one elevation in meters per requested point,
	// in request order. A response of the wrong length is an error.
	GetElevations(ctx context.Context, points []domain.GeoPoint) ([]float64, error)
}
