package engine

import "math"

// ComputeEOQ applies the Wilson formula.
//
//	H   = unitCost * holdingPercent / 100
//	EOQ = sqrt(2 * D * S / H)
//
// When any of D, S or H is non-positive the result is the degenerate
// "insufficient data" outcome with EOQ = 0.
func ComputeEOQ(annualDemand, orderingCost, unitCost, holdingPercent float64) EOQResult {
	holdingCost := unitCost * holdingPercent / 100

	if annualDemand <= 0 || orderingCost <= 0 || holdingCost <= 0 {
		return EOQResult{InsufficientData: true}
	}

	raw := math.Sqrt(2 * annualDemand * orderingCost / holdingCost)

	return EOQResult{
		EOQ:             roundUnits(raw),
		RawEOQ:          raw,
		OrdersPerYear:   annualDemand / raw,
		TotalAnnualCost: (annualDemand/raw)*orderingCost + (raw/2)*holdingCost,
	}
}
