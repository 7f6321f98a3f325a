package propagation

import (
	"math"

	"github.com/coverage-microservice/internal/domain"
)

// COST-231 Hata coefficients for the macro-cell baseline loss.
const (
	hataConstant   = 46.3
	hataFreqFactor = 33.9
	hataSiteFactor = 13.82
	hataDistBase   = 44.9
	hataDistSlope  = 6.55
)

// Vertical antenna pattern: no loss within the tolerance cone around the
// downtilt angle, quadratic falloff outside it.
const (
	tiltToleranceDeg = 3.0
	tiltFalloffScale = 2.0
)

// HataPathLoss returns the COST-231 Hata baseline loss in dB, or NaN for
// geometrically invalid inputs (callers map that to the RSRP floor).
func HataPathLoss(frequencyMHz, siteHeightM, distanceKm float64) float64 {
	if siteHeightM <= 0 || distanceKm <= 0 {
		return math.NaN()
	}
	return hataConstant +
		hataFreqFactor*math.Log10(frequencyMHz) -
		hataSiteFactor*math.Log10(siteHeightM) +
		(hataDistBase-hataDistSlope*math.Log10(siteHeightM))*math.Log10(distanceKm)
}

// VerticalGain returns the antenna pattern loss in dB for the offset between
// the path's elevation angle and the configured downtilt.
func VerticalGain(elevationAngleDeg, downtiltDeg float64) float64 {
	angleDiff := math.Abs(elevationAngleDeg - downtiltDeg)
	if angleDiff <= tiltToleranceDeg {
		return 0
	}
	excess := (angleDiff - tiltToleranceDeg) / tiltFalloffScale
	return -6 * excess * excess
}

// RSRP combines LOS analysis, the Hata baseline, the vertical antenna
// pattern and environmental shadowing into a received power estimate in dBm.
// An obstructed path short-circuits to the floor plus the obstruction
// penalty. The result is always within [RSRPFloor, RSRPCeiling].
func RSRP(
	distanceKm float64,
	siteHeightM, pointHeightM float64,
	frequencyMHz float64,
	txPowerDBm, downtiltDeg float64,
	environment string,
	los LOSResult,
) float64 {
	if distanceKm <= 0 {
		return domain.RSRPFloor
	}

	if !los.Clear {
		return domain.RSRPFloor + los.Penalty
	}

	elevationAngle := math.Atan2(siteHeightM-pointHeightM, distanceKm*1000) * 180 / math.Pi
	verticalGain := VerticalGain(elevationAngle, downtiltDeg)

	pathLoss := HataPathLoss(frequencyMHz, siteHeightM, distanceKm)
	if math.IsNaN(pathLoss) {
		return domain.RSRPFloor
	}

	rsrp := txPowerDBm - pathLoss + verticalGain - domain.ShadowingLoss(environment)
	return clampRSRP(rsrp)
}

func clampRSRP(v float64) float64 {
	if v < domain.RSRPFloor {
		return domain.RSRPFloor
	}
	if v > domain.RSRPCeiling {
		return domain.RSRPCeiling
	}
	return v
}
