package dto

import (
	"time"

	"github.com/coverage-microservice/internal/domain"
)

// CreateSiteRequest - request to register a transmitter site
type CreateSiteRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Lat           float64  `json:"lat" validate:"min=-90,max=90"`
	Lng           float64  `json:"lng" validate:"min=-180,max=180"`
	Frequency     float64  `json:"frequency" validate:"required,gt=0"` // MHz
	AntennaHeight float64  `json:"antenna_height" validate:"required,gt=0"`
	TxPower       float64  `json:"tx_power" validate:"omitempty,gt=0"` // dBm, engine default when omitted
	Downtilt      float64  `json:"downtilt" validate:"min=-90,max=90"`
	Azimuth       float64  `json:"azimuth" validate:"min=0,max=360"`
	Beamwidth     float64  `json:"beamwidth" validate:"required,gt=0,max=360"`
	Environment   string   `json:"environment" validate:"required,oneof=urban suburban rural other"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// SiteCoverageRequest - request to run coverage for a stored site
type SiteCoverageRequest struct {
	Resolution int     `json:"resolution" validate:"required,min=1"`
	Radius     float64 `json:"radius" validate:"required,gt=0"`
}

// SiteResponse - stored site representation
type SiteResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Frequency     float64   `json:"frequency"`
	AntennaHeight float64   `json:"antenna_height"`
	TxPower       float64   `json:"tx_power"`
	Downtilt      float64   `json:"downtilt"`
	Azimuth       float64   `json:"azimuth"`
	Beamwidth     float64   `json:"beamwidth"`
	Environment   string    `json:"environment"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SiteListResponse - all registered sites
type SiteListResponse struct {
	Sites []SiteResponse `json:"sites"`
	Total int            `json:"total"`
}

// ConvertSite maps a domain site to its API representation
func ConvertSite(site *domain.Site) SiteResponse {
	return SiteResponse{
		ID:            site.ID.String(),
		Name:          site.Name,
		Lat:           site.Lat,
		Lng:           site.Lng,
		Frequency:     site.FrequencyMHz,
		AntennaHeight: site.AntennaHeight,
		TxPower:       site.TxPowerDBm,
		Downtilt:      site.Downtilt,
		Azimuth:       site.Azimuth,
		Beamwidth:     site.Beamwidth,
		Environment:   site.Environment,
		Tags:          site.Tags,
		CreatedAt:     site.CreatedAt,
	}
}
