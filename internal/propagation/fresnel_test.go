package propagation_test

import (
	"math"
	"testing"

	"github.com/coverage-microservice/internal/propagation"
	"github.com/stretchr/testify/assert"
)

func TestDiffractionLoss(t *testing.T) {
	t.Run("no obstruction gives zero loss", func(t *testing.T) {
		assert.Equal(t, 0.0, propagation.DiffractionLoss(1.0, 0, 900))
		assert.Equal(t, 0.0, propagation.DiffractionLoss(5.0, -12.5, 1800))
		assert.Equal(t, 0.0, propagation.DiffractionLoss(0.2, -0.01, 2600))
	})

	t.Run("invalid distance returns sentinel", func(t *testing.T) {
		assert.Equal(t, propagation.ExtremeLoss, propagation.DiffractionLoss(0, 10, 900))
		assert.Equal(t, propagation.ExtremeLoss, propagation.DiffractionLoss(-1, 10, 900))
	})

	t.Run("invalid frequency returns sentinel", func(t *testing.T) {
		assert.Equal(t, propagation.ExtremeLoss, propagation.DiffractionLoss(1.0, 10, 0))
		assert.Equal(t, propagation.ExtremeLoss, propagation.DiffractionLoss(1.0, 10, -900))
	})

	t.Run("partial blockage is a quadratic penalty", func(t *testing.T) {
		// First Fresnel zone radius at 900 MHz over 1 km:
		// sqrt((300/900) * 1000 / 2) = ~12.91 m
		radius := math.Sqrt((300.0 / 900.0) * 1000 / 2)

		loss := propagation.DiffractionLoss(1.0, radius/2, 900)
		assert.InDelta(t, -6*0.25, loss, 1e-9)

		// Deeper intrusion within the zone costs more
		deeper := propagation.DiffractionLoss(1.0, radius*0.9, 900)
		assert.Less(t, deeper, loss)
	})

	t.Run("full blockage grows with obstruction depth", func(t *testing.T) {
		radius := math.Sqrt((300.0 / 900.0) * 1000 / 2)

		blocked := propagation.DiffractionLoss(1.0, radius*2, 900)
		assert.InDelta(t, -20*math.Log10(2), blocked, 1e-9)

		worse := propagation.DiffractionLoss(1.0, radius*10, 900)
		assert.Less(t, worse, blocked)
	})

	t.Run("boundary between partial and full blockage", func(t *testing.T) {
		radius := math.Sqrt((300.0 / 900.0) * 1000 / 2)

		atEdge := propagation.DiffractionLoss(1.0, radius, 900)
		assert.InDelta(t, -6.0, atEdge, 1e-9)
	})
}
