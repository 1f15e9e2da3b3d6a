package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/replenish-engine/internal/domain"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func sale(daysAgo int, qty float64) domain.StockMovement {
	return domain.StockMovement{
		ProductID:  1,
		Kind:       domain.MovementSale,
		Quantity:   qty,
		OccurredAt: testNow.AddDate(0, 0, -daysAgo),
	}
}

func TestEstimateAnnualDemand_SumsSalesInWindow(t *testing.T) {
	movements := []domain.StockMovement{
		sale(10, -3),
		sale(100, -5),
		sale(300, -2),
		// Outside the 365-day window.
		sale(400, -50),
		// Non-sale kinds never count as demand.
		{Kind: domain.MovementReception, Quantity: 50, OccurredAt: testNow.AddDate(0, 0, -5)},
		{Kind: domain.MovementLoss, Quantity: -4, OccurredAt: testNow.AddDate(0, 0, -5)},
	}

	assert.InDelta(t, 10.0, EstimateAnnualDemand(movements, testNow, 0), 1e-6)
}

func TestEstimateAnnualDemand_FallbackExtrapolatesFromTrailing90Days(t *testing.T) {
	// An empty requested window falls back to the trailing 90 days times 4.
	movements := []domain.StockMovement{
		sale(45, -5),
		sale(80, -2),
	}

	got := EstimateAnnualDemand(movements, testNow, 30)
	assert.InDelta(t, 28.0, got, 1e-6)
}

func TestEstimateAnnualDemand_NoConsumptionIsZero(t *testing.T) {
	assert.Zero(t, EstimateAnnualDemand(nil, testNow, 0))

	movements := []domain.StockMovement{
		{Kind: domain.MovementReception, Quantity: 100, OccurredAt: testNow.AddDate(0, 0, -10)},
	}
	assert.Zero(t, EstimateAnnualDemand(movements, testNow, 0))
}

func TestEstimateDemandProfile_DailyIsAnnualOver365(t *testing.T) {
	movements := []domain.StockMovement{
		sale(1, -7),
		sale(50, -13),
		sale(200, -21),
	}

	profile := EstimateDemandProfile(movements, testNow)
	assert.InDelta(t, profile.AnnualDemand/365.0, profile.DailyDemand, 1e-6)
	assert.True(t, profile.HasConsumption())
}

func TestEstimateDailySaleStdDev(t *testing.T) {
	t.Run("two daily buckets", func(t *testing.T) {
		// Day A: |-1| + |-1| = 2, day B: |-4| = 4. Sample std dev of
		// {2, 4} is sqrt(2).
		movements := []domain.StockMovement{
			sale(3, -1),
			sale(3, -1),
			sale(7, -4),
		}
		assert.InDelta(t, math.Sqrt2, EstimateDailySaleStdDev(movements, testNow), 1e-6)
	})

	t.Run("fewer than two points is zero", func(t *testing.T) {
		assert.Zero(t, EstimateDailySaleStdDev([]domain.StockMovement{sale(3, -5)}, testNow))
		assert.Zero(t, EstimateDailySaleStdDev(nil, testNow))
	})

	t.Run("ignores sales outside the 90-day window", func(t *testing.T) {
		movements := []domain.StockMovement{
			sale(3, -2),
			sale(120, -9),
		}
		assert.Zero(t, EstimateDailySaleStdDev(movements, testNow))
	})
}
