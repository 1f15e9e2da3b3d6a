package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEOQ_WilsonFormula(t *testing.T) {
	// D=365, S=10, unit cost 20 at 10% holding => H=2,
	// EOQ = sqrt(2*365*10/2) = sqrt(3650) ~ 60.4.
	result := ComputeEOQ(365, 10, 20, 10)

	assert.False(t, result.InsufficientData)
	assert.Equal(t, 60, result.EOQ)
	assert.InDelta(t, math.Sqrt(3650), result.RawEOQ, 1e-9)
	assert.InDelta(t, 365/math.Sqrt(3650), result.OrdersPerYear, 1e-9)
	// Total cost = ordering + holding = sqrt(2*D*S*H) at the optimum.
	assert.InDelta(t, math.Sqrt(2*365*10*2), result.TotalAnnualCost, 1e-9)
}

func TestComputeEOQ_DegeneratesOnMissingInputs(t *testing.T) {
	cases := []struct {
		name                              string
		demand, ordering, unit, holdingPc float64
	}{
		{"zero demand", 0, 10, 20, 10},
		{"negative demand", -5, 10, 20, 10},
		{"zero ordering cost", 365, 0, 20, 10},
		{"zero unit cost", 365, 10, 0, 10},
		{"zero holding percent", 365, 10, 20, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ComputeEOQ(tc.demand, tc.ordering, tc.unit, tc.holdingPc)
			assert.True(t, result.InsufficientData)
			assert.Zero(t, result.EOQ)
			assert.Zero(t, result.OrdersPerYear)
			assert.Zero(t, result.TotalAnnualCost)
		})
	}
}
