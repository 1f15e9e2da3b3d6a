package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Analyzer runs the full per-product computation chain: demand profile,
// lead time, EOQ, reorder point, priority score and stockout prediction.
// It holds no mutable state; products may be analyzed concurrently.
type Analyzer struct {
	// Now is overridable for deterministic tests.
	Now func() time.Time
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{Now: time.Now}
}

// Analyze computes the ProductAnalysis tuple for one product. It only
// fails on malformed master data; sparse or missing movement history
// degrades to informational results instead.
func (a *Analyzer) Analyze(in ProductInputs) (ProductAnalysis, error) {
	p := in.Product

	if p.Stock < 0 {
		return ProductAnalysis{}, fmt.Errorf("product %s: negative stock %d", p.SKU, p.Stock)
	}
	if p.UnitCost < 0 || p.OrderingCost < 0 || p.HoldingCostPercent < 0 {
		return ProductAnalysis{}, fmt.Errorf("product %s: negative cost configuration", p.SKU)
	}

	now := a.Now()

	profile := EstimateDemandProfile(in.Movements, now)
	leadTime := ResolveLeadTime(p, in.Links)
	eoq := ComputeEOQ(profile.AnnualDemand, p.OrderingCost, p.UnitCost, p.HoldingCostPercent)
	reorder := ComputeReorderPoint(profile.DailyDemand, profile.DemandStdDev, leadTime, p.Stock)
	score := ComputeScore(profile, p.Stock, p.LowStockThreshold)
	stockout := PredictStockout(p.Stock, profile.DailyDemand, leadTime, now)

	qty := recommendedOrderQty(eoq, reorder, p.Stock)
	value := decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromFloat(p.UnitCost)).Round(2)

	return ProductAnalysis{
		ProductID:             p.ID,
		SKU:                   p.SKU,
		Name:                  p.Name,
		Stock:                 p.Stock,
		LowStockThreshold:     p.LowStockThreshold,
		LeadTimeDays:          leadTime,
		Demand:                profile,
		EOQ:                   eoq,
		Reorder:               reorder,
		Score:                 score,
		Stockout:              stockout,
		RecommendedOrderQty:   qty,
		RecommendedOrderValue: value,
		ComputedAt:            now,
	}, nil
}

// recommendedOrderQty suggests how much to order once the reorder point is
// reached: the EOQ when it is computable, otherwise enough to top the stock
// up to 1.5x the reorder point.
func recommendedOrderQty(eoq EOQResult, reorder ReorderPointResult, currentStock int) int {
	if !reorder.ShouldOrder {
		return 0
	}
	if eoq.EOQ > 0 {
		return eoq.EOQ
	}
	target := reorder.RawReorderPoint*1.5 - float64(currentStock)
	if target <= 0 {
		return 0
	}
	return int(math.Round(target))
}
