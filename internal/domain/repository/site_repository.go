package repository

import (
	"context"

	"github.com/coverage-microservice/internal/domain"
	"github.com/google/uuid"
)

// SiteRepository defines persistence for the transmitter site registry
type SiteRepository interface {
	// Create stores a new site
	Create(ctx context.Context, site *domain.Site) error

	// GetByID returns the site or nil when it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error)

	// List returns all sites ordered by creation time
	List(ctx context.Context) ([]*domain.Site, error)

	// Delete removes a site
	Delete(ctx context.Context, id uuid.UUID) error
}
