package domain

import (
	"fmt"
	"math"
)

// GeoPoint - geographic coordinate in decimal degrees
type GeoPoint struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// TerrainKey identifies a terrain sample. Coordinates are rounded to
// 5 decimal places (~1.1 m), so points closer than that share one sample.
type TerrainKey struct {
	Lat float64
	Lng float64
}

// Key returns the terrain cache key for the point.
func (p GeoPoint) Key() TerrainKey {
	return TerrainKey{
		Lat: round5(p.Lat),
		Lng: round5(p.Lng),
	}
}

// String formats the key as "lat,lng" for external lookups and cache keys.
func (k TerrainKey) String() string {
	return fmt.Sprintf("%.5f,%.5f", k.Lat, k.Lng)
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
