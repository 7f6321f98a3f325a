package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type siteRepository struct {
	db *DB
}

// NewSiteRepository creates the Postgres-backed site registry
func NewSiteRepository(db *DB) repository.SiteRepository {
	return &siteRepository{db: db}
}

type siteRow struct {
	ID            uuid.UUID      `db:"id"`
	Name          string         `db:"name"`
	Lat           float64        `db:"lat"`
	Lng           float64        `db:"lng"`
	FrequencyMHz  float64        `db:"frequency_mhz"`
	AntennaHeight float64        `db:"antenna_height"`
	TxPowerDBm    float64        `db:"tx_power_dbm"`
	Downtilt      float64        `db:"downtilt"`
	Azimuth       float64        `db:"azimuth"`
	Beamwidth     float64        `db:"beamwidth"`
	Environment   string         `db:"environment"`
	Tags          pq.StringArray `db:"tags"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r siteRow) toDomain() *domain.Site {
	return &domain.Site{
		ID:            r.ID,
		Name:          r.Name,
		Lat:           r.Lat,
		Lng:           r.Lng,
		FrequencyMHz:  r.FrequencyMHz,
		AntennaHeight: r.AntennaHeight,
		TxPowerDBm:    r.TxPowerDBm,
		Downtilt:      r.Downtilt,
		Azimuth:       r.Azimuth,
		Beamwidth:     r.Beamwidth,
		Environment:   r.Environment,
		Tags:          r.Tags,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `
		INSERT INTO sites (
			id, name, lat, lng, frequency_mhz, antenna_height, tx_power_dbm,
			downtilt, azimuth, beamwidth, environment, tags, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		site.ID, site.Name, site.Lat, site.Lng,
		site.FrequencyMHz, site.AntennaHeight, site.TxPowerDBm,
		site.Downtilt, site.Azimuth, site.Beamwidth, site.Environment,
		pq.Array(site.Tags), site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		r.db.logger.Error("Failed to insert site",
			zap.String("name", site.Name),
			zap.Error(err))
		return fmt.Errorf("failed to insert site: %w", err)
	}

	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	query := `
		SELECT id, name, lat, lng, frequency_mhz, antenna_height, tx_power_dbm,
		       downtilt, azimuth, beamwidth, environment, tags, created_at, updated_at
		FROM sites
		WHERE id = $1`

	var row siteRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.db.logger.Error("Failed to get site",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	return row.toDomain(), nil
}

func (r *siteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	query := `
		SELECT id, name, lat, lng, frequency_mhz, antenna_height, tx_power_dbm,
		       downtilt, azimuth, beamwidth, environment, tags, created_at, updated_at
		FROM sites
		ORDER BY created_at`

	var rows []siteRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.db.logger.Error("Failed to list sites", zap.Error(err))
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	sites := make([]*domain.Site, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, row.toDomain())
	}

	return sites, nil
}

func (r *siteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		r.db.logger.Error("Failed to delete site",
			zap.String("id", id.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete site: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
