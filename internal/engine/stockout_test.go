package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictStockout_NoConsumption(t *testing.T) {
	pred := PredictStockout(50, 0, 7, testNow)

	assert.Nil(t, pred.DaysRemaining)
	assert.Nil(t, pred.PredictedDate)
	assert.Equal(t, UrgencyLow, pred.Urgency)
	assert.Contains(t, pred.Message, "no consumption")
}

func TestPredictStockout_CriticalWithinLeadTime(t *testing.T) {
	// stock=10 at 2/day is 5 days, equal to the 5-day lead time.
	pred := PredictStockout(10, 2, 5, testNow)

	require.NotNil(t, pred.DaysRemaining)
	assert.InDelta(t, 5.0, *pred.DaysRemaining, 1e-9)
	assert.Equal(t, UrgencyCritical, pred.Urgency)

	require.NotNil(t, pred.PredictedDate)
	assert.Equal(t, testNow.AddDate(0, 0, 5), *pred.PredictedDate)
}

func TestPredictStockout_TierBoundaries(t *testing.T) {
	// Lead time 10: boundaries at 10, 15 and 20 days.
	cases := []struct {
		name  string
		stock int
		want  Urgency
	}{
		{"at lead time", 10, UrgencyCritical},
		{"just past lead time", 11, UrgencyHigh},
		{"at 1.5x lead time", 15, UrgencyHigh},
		{"just past 1.5x", 16, UrgencyMedium},
		{"at 2x lead time", 20, UrgencyMedium},
		{"past 2x lead time", 21, UrgencyLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred := PredictStockout(tc.stock, 1, 10, testNow)
			assert.Equal(t, tc.want, pred.Urgency)
		})
	}
}

func TestPredictStockout_DateUsesFloorOfDaysRemaining(t *testing.T) {
	// stock=10 at 3/day is 3.33 days; the predicted date is the last
	// fully covered day.
	pred := PredictStockout(10, 3, 7, testNow)

	require.NotNil(t, pred.PredictedDate)
	assert.Equal(t, testNow.AddDate(0, 0, 3), *pred.PredictedDate)
}

func TestPredictStockout_Deterministic(t *testing.T) {
	a := PredictStockout(42, 1.7, 9, testNow)
	b := PredictStockout(42, 1.7, 9, testNow)
	assert.Equal(t, a, b)
}
