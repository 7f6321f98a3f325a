package domain

// ElevationResponse - response shape of the elevation data source
type ElevationResponse struct {
	Results []ElevationResult `json:"results"`
	Status  string            `json:"status"`
}

// ElevationResult - one resolved elevation sample
type ElevationResult struct {
	Elevation  float64  `json:"elevation"` // meters above sea level
	Location   GeoPoint `json:"location"`
	Resolution float64  `json:"resolution,omitempty"`
}
