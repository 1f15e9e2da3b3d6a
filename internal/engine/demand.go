package engine

import (
	"math"
	"time"

	"github.com/andresuchdata/replenish-engine/internal/domain"
)

// EstimateAnnualDemand sums sale-movement magnitudes over the trailing
// window (365 days when windowDays <= 0). When the window is empty it
// extrapolates from the trailing 90 days times 4; this is an explicit
// annualization policy, not a statistical projection. Zero means no
// detected consumption and is a valid degenerate result.
func EstimateAnnualDemand(movements []domain.StockMovement, now time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		windowDays = DemandWindowDays
	}

	raw := sumSaleMagnitude(movements, now.AddDate(0, 0, -windowDays), now)
	if raw > 0 {
		return raw
	}

	recent := sumSaleMagnitude(movements, now.AddDate(0, 0, -FallbackWindowDays), now)
	return recent * FallbackMultiplier
}

// EstimateDailySaleStdDev computes the sample standard deviation of daily
// sale magnitudes over the trailing 90 days. Days without sales are absent
// from the series, not zero-filled. Fewer than 2 daily data points yields
// 0: undefined variability contributes no safety stock.
func EstimateDailySaleStdDev(movements []domain.StockMovement, now time.Time) float64 {
	since := now.AddDate(0, 0, -VariabilityWindowDays)

	daily := make(map[string]float64)
	for _, m := range movements {
		if m.Kind != domain.MovementSale {
			continue
		}
		if m.OccurredAt.Before(since) || m.OccurredAt.After(now) {
			continue
		}
		day := m.OccurredAt.Format("2006-01-02")
		daily[day] += math.Abs(m.Quantity)
	}

	n := len(daily)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, qty := range daily {
		sum += qty
	}
	mean := sum / float64(n)

	var sq float64
	for _, qty := range daily {
		d := qty - mean
		sq += d * d
	}

	// Sample variance, n-1 denominator.
	return math.Sqrt(sq / float64(n-1))
}

// EstimateDemandProfile bundles annual demand, its daily rate and the
// trailing-window variability into one profile.
func EstimateDemandProfile(movements []domain.StockMovement, now time.Time) DemandProfile {
	annual := EstimateAnnualDemand(movements, now, DemandWindowDays)
	return DemandProfile{
		AnnualDemand: annual,
		DailyDemand:  annual / 365.0,
		DemandStdDev: EstimateDailySaleStdDev(movements, now),
	}
}

func sumSaleMagnitude(movements []domain.StockMovement, since, until time.Time) float64 {
	var total float64
	for _, m := range movements {
		if m.Kind != domain.MovementSale {
			continue
		}
		if m.OccurredAt.Before(since) || m.OccurredAt.After(until) {
			continue
		}
		total += m.Quantity
	}
	// Sale deltas are negative; demand is their magnitude.
	return math.Abs(total)
}
