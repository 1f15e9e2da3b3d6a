package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReorderPoint(t *testing.T) {
	// daily=2, lead=7, sigma=1: safety = 1.65*sqrt(7) ~ 4.37,
	// reorder = 14 + 4.37 ~ 18.37, rounded 18.
	result := ComputeReorderPoint(2, 1, 7, 10)

	assert.Equal(t, 4, result.SafetyStock)
	assert.Equal(t, 18, result.ReorderPoint)
	assert.InDelta(t, 14+1.65*math.Sqrt(7), result.RawReorderPoint, 1e-9)
	assert.InDelta(t, 0.95, result.ServiceLevel, 1e-9)
	assert.True(t, result.ShouldOrder)
}

func TestComputeReorderPoint_ShouldOrderBoundary(t *testing.T) {
	// reorder point is exactly 20 with sigma=0: stock at the point still
	// triggers an order, one unit above does not.
	atPoint := ComputeReorderPoint(4, 0, 5, 20)
	assert.True(t, atPoint.ShouldOrder)

	abovePoint := ComputeReorderPoint(4, 0, 5, 21)
	assert.False(t, abovePoint.ShouldOrder)
}

func TestComputeReorderPoint_NoVariabilityMeansNoSafetyStock(t *testing.T) {
	result := ComputeReorderPoint(3, 0, 10, 100)
	assert.Zero(t, result.SafetyStock)
	assert.Equal(t, 30, result.ReorderPoint)
}

func TestComputeReorderPoint_ZeroDemand(t *testing.T) {
	result := ComputeReorderPoint(0, 0, 7, 0)
	assert.Zero(t, result.ReorderPoint)
	assert.Zero(t, result.SafetyStock)
	// Zero stock at a zero reorder point still satisfies stock <= point.
	assert.True(t, result.ShouldOrder)
}
