package dto

import "github.com/coverage-microservice/internal/domain"

// CoverageRequest - request for one coverage computation
type CoverageRequest struct {
	Site       SitePoint         `json:"site" validate:"required"`
	Model      PropagationParams `json:"model" validate:"required"`
	Resolution int               `json:"resolution" validate:"required,min=1"`
	Radius     float64           `json:"radius" validate:"required,gt=0"`
}

// SitePoint - transmitter coordinates
type SitePoint struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// PropagationParams - antenna and propagation model parameters
type PropagationParams struct {
	Frequency     float64 `json:"frequency" validate:"required,gt=0"` // MHz
	AntennaHeight float64 `json:"antenna_height" validate:"required,gt=0"`
	Downtilt      float64 `json:"downtilt" validate:"min=-90,max=90"`
	Azimuth       float64 `json:"azimuth" validate:"min=0,max=360"`
	Beamwidth     float64 `json:"beamwidth" validate:"required,gt=0,max=360"`
	Environment   string  `json:"environment" validate:"required,oneof=urban suburban rural other"`
}

// CoverageResponse - ordered list of coverage samples
type CoverageResponse struct {
	Samples []domain.CoverageSample `json:"samples"`
	Total   int                     `json:"total"`
}
