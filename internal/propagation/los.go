package propagation

import (
	"math"

	"github.com/coverage-microservice/internal/domain"
)

const (
	// Degrees-to-km approximation used across the grid math
	kmPerDegree = 111.0

	// Sampling bounds along a propagation path
	minSegments = 10
	maxSegments = 200

	// Obstruction penalty cap in dB
	maxPenalty = 20.0
)

// LOSResult - outcome of a line-of-sight analysis for one path
type LOSResult struct {
	Clear   bool
	Penalty float64 // dB, in [0, maxPenalty]
}

// FlatDistanceKm approximates the great-circle distance between two points
// using the 1 degree ~ 111 km planar shortcut the grid generator relies on.
func FlatDistanceKm(a, b domain.GeoPoint) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * kmPerDegree
}

// AnalyzeLOS walks the path between site and point at adaptive resolution,
// comparing interpolated line height against cached terrain. Every segment
// where terrain rises above the line marks the path blocked and contributes
// diffraction loss; the penalty is the per-segment average capped at 20 dB.
//
// siteHeight and pointHeight are effective heights: structure height plus
// terrain elevation. Terrain for intermediate samples comes from the cache,
// defaulting to 0 m for unknown coordinates.
func AnalyzeLOS(
	site, point domain.GeoPoint,
	siteHeight, pointHeight float64,
	frequencyMHz float64,
	terrain *domain.TerrainCache,
) LOSResult {
	distanceKm := FlatDistanceKm(site, point)
	if distanceKm <= 0 {
		return LOSResult{Clear: false, Penalty: maxPenalty}
	}

	// Denser sampling for longer paths, capped for cost control
	segments := int(distanceKm * 100)
	if segments < minSegments {
		segments = minSegments
	}
	if segments > maxSegments {
		segments = maxSegments
	}

	latStep := (point.Lat - site.Lat) / float64(segments)
	lngStep := (point.Lng - site.Lng) / float64(segments)

	clear := true
	obstructionLoss := 0.0

	for i := 1; i < segments; i++ {
		intermediate := domain.GeoPoint{
			Lat: site.Lat + float64(i)*latStep,
			Lng: site.Lng + float64(i)*lngStep,
		}
		elevation := terrain.GetOrDefault(intermediate)

		ratio := float64(i) / float64(segments)
		lineHeight := siteHeight + (pointHeight-siteHeight)*ratio

		heightDiff := elevation - lineHeight
		if heightDiff > 0 {
			clear = false
			obstructionLoss += DiffractionLoss(distanceKm, heightDiff, frequencyMHz)
		}
	}

	penalty := math.Min(maxPenalty, -obstructionLoss/float64(segments))
	return LOSResult{Clear: clear, Penalty: penalty}
}
