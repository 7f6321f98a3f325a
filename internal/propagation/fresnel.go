package propagation

import "math"

// ExtremeLoss is the sentinel returned for geometrically invalid inputs.
// It matches the RSRP floor so a blocked pipeline still yields a number.
const ExtremeLoss = -140.0

// DiffractionLoss estimates knife-edge diffraction loss in dB for an
// obstruction intruding heightDiffM meters into the first Fresnel zone
// of a path of distanceKm at frequencyMHz. Zero means the zone is clear.
func DiffractionLoss(distanceKm, heightDiffM, frequencyMHz float64) float64 {
	if distanceKm <= 0 || frequencyMHz <= 0 {
		return ExtremeLoss
	}

	wavelengthM := 300 / frequencyMHz
	fresnelRadius := math.Sqrt(wavelengthM * distanceKm * 1000 / 2)
	if fresnelRadius <= 0 {
		return ExtremeLoss
	}

	switch {
	case heightDiffM > fresnelRadius:
		// Fully blocked: loss grows with obstruction depth
		return -20 * math.Log10(heightDiffM/fresnelRadius)
	case heightDiffM > 0:
		// Partial intrusion into the first Fresnel zone
		ratio := heightDiffM / fresnelRadius
		return -6 * ratio * ratio
	default:
		return 0
	}
}
