package domain

import (
	"time"

	"github.com/google/uuid"
)

// Site - a stored transmitter site in the planning registry
type Site struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Lat           float64   `json:"lat" db:"lat"`
	Lng           float64   `json:"lng" db:"lng"`
	FrequencyMHz  float64   `json:"frequency" db:"frequency_mhz"`
	AntennaHeight float64   `json:"antenna_height" db:"antenna_height"`
	TxPowerDBm    float64   `json:"tx_power" db:"tx_power_dbm"`
	Downtilt      float64   `json:"downtilt" db:"downtilt"`
	Azimuth       float64   `json:"azimuth" db:"azimuth"`
	Beamwidth     float64   `json:"beamwidth" db:"beamwidth"`
	Environment   string    `json:"environment" db:"environment"`
	Tags          []string  `json:"tags,omitempty" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Config converts the stored site into engine parameters.
func (s *Site) Config() SiteConfig {
	return SiteConfig{
		Site:          GeoPoint{Lat: s.Lat, Lng: s.Lng},
		FrequencyMHz:  s.FrequencyMHz,
		AntennaHeight: s.AntennaHeight,
		TxPowerDBm:    s.TxPowerDBm,
		Downtilt:      s.Downtilt,
		Azimuth:       s.Azimuth,
		Beamwidth:     s.Beamwidth,
		Environment:   s.Environment,
	}
}
