package engine

import (
	"fmt"
	"math"
	"time"
)

// PredictStockout projects the depletion date from the current stock and
// daily demand, and classifies the urgency relative to the lead time.
// Tiers, first match wins:
//
//	days <= lead       critical
//	days <= lead*1.5   high
//	days <= lead*2     medium
//	otherwise          low
//
// With no measurable consumption there is no projection and the risk is
// low. The predicted date uses floor(daysRemaining): it is the last fully
// covered day.
func PredictStockout(currentStock int, dailyDemand float64, leadTimeDays int, now time.Time) StockoutPrediction {
	if dailyDemand <= 0 {
		return StockoutPrediction{
			Urgency: UrgencyLow,
			Message: "no consumption detected, no stockout risk",
		}
	}

	days := float64(currentStock) / dailyDemand
	date := now.AddDate(0, 0, int(math.Floor(days)))
	lead := float64(leadTimeDays)

	pred := StockoutPrediction{
		DaysRemaining: &days,
		PredictedDate: &date,
	}

	switch {
	case days <= lead:
		pred.Urgency = UrgencyCritical
		pred.Message = fmt.Sprintf("stockout in %.1f days, within the %d-day lead time", days, leadTimeDays)
	case days <= lead*1.5:
		pred.Urgency = UrgencyHigh
		pred.Message = fmt.Sprintf("stockout in %.1f days, close to the %d-day lead time", days, leadTimeDays)
	case days <= lead*2:
		pred.Urgency = UrgencyMedium
		pred.Message = fmt.Sprintf("stockout in %.1f days, under twice the %d-day lead time", days, leadTimeDays)
	default:
		pred.Urgency = UrgencyLow
		pred.Message = fmt.Sprintf("stockout in %.1f days, comfortable against the %d-day lead time", days, leadTimeDays)
	}

	return pred
}
