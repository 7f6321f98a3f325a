package domain

// Environment classes used for shadowing deductions.
const (
	EnvironmentUrban    = "urban"
	EnvironmentSuburban = "suburban"
	EnvironmentRural    = "rural"
	EnvironmentOther    = "other"
)

// RSRP bounds in dBm. Every computed sample is clamped into this range.
const (
	RSRPFloor   = -140.0
	RSRPCeiling = -30.0
)

// SiteConfig - transmitter parameters for one coverage computation
type SiteConfig struct {
	Site          GeoPoint `json:"site"`
	FrequencyMHz  float64  `json:"frequency"`
	AntennaHeight float64  `json:"antenna_height"` // meters above ground
	TxPowerDBm    float64  `json:"tx_power"`
	Downtilt      float64  `json:"downtilt"`  // degrees below horizontal
	Azimuth       float64  `json:"azimuth"`   // degrees from north
	Beamwidth     float64  `json:"beamwidth"` // degrees
	Environment   string   `json:"environment"`
}

// CoverageSample - estimated received power at one grid point
type CoverageSample struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	RSRP float64 `json:"rsrp"` // dBm, in [RSRPFloor, RSRPCeiling]
}

// ShadowingLoss returns the categorical clutter deduction in dB for an
// environment class. Unknown classes get no deduction.
func ShadowingLoss(environment string) float64 {
	switch environment {
	case EnvironmentUrban:
		return 2
	case EnvironmentSuburban:
		return 1.5
	case EnvironmentRural:
		return 1
	default:
		return 0
	}
}
