package engine

import "math"

// ComputeReorderPoint sizes the safety stock for the fixed 95% service
// level and derives the reorder threshold:
//
//	safety  = z * sigma * sqrt(leadTimeDays)
//	reorder = dailyDemand * leadTimeDays + safety
//
// Reported values are rounded to whole units; the raw reorder point is kept
// for downstream quantity math.
func ComputeReorderPoint(dailyDemand, sigma float64, leadTimeDays, currentStock int) ReorderPointResult {
	safety := ServiceLevelZ * sigma * math.Sqrt(float64(leadTimeDays))
	reorder := dailyDemand*float64(leadTimeDays) + safety

	return ReorderPointResult{
		ReorderPoint:    roundUnits(reorder),
		RawReorderPoint: reorder,
		SafetyStock:     roundUnits(safety),
		ServiceLevel:    ServiceLevel,
		ShouldOrder:     float64(currentStock) <= reorder,
	}
}
