package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/replenish-engine/internal/domain"
)

func fixedAnalyzer() *Analyzer {
	return &Analyzer{Now: func() time.Time { return testNow }}
}

func steadySales(perDay float64, days int) []domain.StockMovement {
	movements := make([]domain.StockMovement, 0, days)
	for i := 1; i <= days; i++ {
		movements = append(movements, sale(i, -perDay))
	}
	return movements
}

func TestAnalyzer_Analyze(t *testing.T) {
	product := domain.Product{
		ID:                 1,
		SKU:                "WID-001",
		Name:               "Widget",
		Stock:              20,
		LowStockThreshold:  30,
		UnitCost:           20,
		OrderingCost:       10,
		HoldingCostPercent: 10,
		IsActive:           true,
		IsPhysical:         true,
	}
	links := []domain.SupplierLink{
		{ProductID: 1, LeadTimeDays: intPtr(7), IsPreferred: true, IsActive: true},
	}

	analysis, err := fixedAnalyzer().Analyze(ProductInputs{
		Product:   product,
		Movements: steadySales(1, 365),
		Links:     links,
	})
	require.NoError(t, err)

	assert.Equal(t, "WID-001", analysis.SKU)
	assert.Equal(t, 7, analysis.LeadTimeDays)
	assert.InDelta(t, 365, analysis.Demand.AnnualDemand, 1e-6)
	assert.InDelta(t, 1.0, analysis.Demand.DailyDemand, 1e-6)
	// Perfectly steady sales: no variability, no safety stock.
	assert.Zero(t, analysis.Demand.DemandStdDev)
	assert.Zero(t, analysis.Reorder.SafetyStock)
	assert.Equal(t, 7, analysis.Reorder.ReorderPoint)
	assert.False(t, analysis.Reorder.ShouldOrder)

	assert.Equal(t, 60, analysis.EOQ.EOQ)
	assert.Equal(t, UrgencyLow, analysis.Stockout.Urgency)
	// 20/30 of threshold is within the <=1.0 criticality band.
	assert.Equal(t, 20, analysis.Score.CriticalityScore)
	// Stock above the reorder point: nothing to order yet.
	assert.Zero(t, analysis.RecommendedOrderQty)
	assert.True(t, analysis.RecommendedOrderValue.IsZero())
	assert.Equal(t, testNow, analysis.ComputedAt)
}

func TestAnalyzer_RecommendsEOQWhenBelowReorderPoint(t *testing.T) {
	product := domain.Product{
		ID:                 2,
		SKU:                "WID-002",
		Stock:              3,
		LowStockThreshold:  10,
		UnitCost:           20,
		OrderingCost:       10,
		HoldingCostPercent: 10,
		DefaultLeadTimeDays: intPtr(7),
	}

	analysis, err := fixedAnalyzer().Analyze(ProductInputs{
		Product:   product,
		Movements: steadySales(1, 365),
	})
	require.NoError(t, err)

	assert.True(t, analysis.Reorder.ShouldOrder)
	assert.Equal(t, 60, analysis.RecommendedOrderQty)
	assert.True(t, decimal.NewFromInt(1200).Equal(analysis.RecommendedOrderValue))
}

func TestAnalyzer_FallbackQtyWhenEOQUnavailable(t *testing.T) {
	// No unit cost: EOQ degenerates; suggestion tops stock up to 1.5x the
	// reorder point instead.
	product := domain.Product{
		ID:                  3,
		SKU:                 "WID-003",
		Stock:               2,
		LowStockThreshold:   10,
		DefaultLeadTimeDays: intPtr(10),
	}

	analysis, err := fixedAnalyzer().Analyze(ProductInputs{
		Product:   product,
		Movements: steadySales(1, 365),
	})
	require.NoError(t, err)

	require.True(t, analysis.EOQ.InsufficientData)
	require.True(t, analysis.Reorder.ShouldOrder)
	// Raw reorder point is 10; 1.5*10 - 2 = 13.
	assert.Equal(t, 13, analysis.RecommendedOrderQty)
}

func TestAnalyzer_RejectsMalformedMasterData(t *testing.T) {
	base := domain.Product{ID: 4, SKU: "BAD-001", Stock: 1}

	negStock := base
	negStock.Stock = -1
	_, err := fixedAnalyzer().Analyze(ProductInputs{Product: negStock})
	assert.Error(t, err)

	negCost := base
	negCost.UnitCost = -5
	_, err = fixedAnalyzer().Analyze(ProductInputs{Product: negCost})
	assert.Error(t, err)
}

func TestAnalyzer_NoConsumptionDegradesGracefully(t *testing.T) {
	product := domain.Product{
		ID:                 5,
		SKU:                "DUST-001",
		Stock:              8,
		LowStockThreshold:  10,
		UnitCost:           20,
		OrderingCost:       10,
		HoldingCostPercent: 10,
	}

	analysis, err := fixedAnalyzer().Analyze(ProductInputs{Product: product})
	require.NoError(t, err)

	assert.False(t, analysis.Demand.HasConsumption())
	assert.True(t, analysis.EOQ.InsufficientData)
	assert.Zero(t, analysis.Score.FrequencyScore)
	assert.Zero(t, analysis.Score.ReliabilityScore)
	assert.Nil(t, analysis.Stockout.DaysRemaining)
	assert.Equal(t, UrgencyLow, analysis.Stockout.Urgency)
}

func TestAnalyzeBatch_FailSoft(t *testing.T) {
	good := ProductInputs{
		Product: domain.Product{
			ID: 1, SKU: "OK-1", Stock: 5, LowStockThreshold: 10,
			UnitCost: 20, OrderingCost: 10, HoldingCostPercent: 10,
		},
		Movements: steadySales(2, 90),
	}
	bad := ProductInputs{
		Product: domain.Product{ID: 2, SKU: "BAD-1", Stock: -3},
	}
	alsoGood := ProductInputs{
		Product: domain.Product{ID: 3, SKU: "OK-2", Stock: 100},
	}

	batch := fixedAnalyzer().AnalyzeBatch(context.Background(),
		[]ProductInputs{good, bad, alsoGood}, BatchOptions{Concurrency: 2})

	assert.Len(t, batch.Results, 2)
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "BAD-1", batch.Failures[0].SKU)
	assert.NotEmpty(t, batch.Failures[0].Reason)
}

func TestSortByRisk(t *testing.T) {
	days := func(v float64) *float64 { return &v }
	results := []ProductAnalysis{
		{SKU: "LOW", Stockout: StockoutPrediction{Urgency: UrgencyLow, DaysRemaining: days(90)}},
		{SKU: "NONE", Stockout: StockoutPrediction{Urgency: UrgencyLow}},
		{SKU: "CRIT-B", Stockout: StockoutPrediction{Urgency: UrgencyCritical, DaysRemaining: days(4)}},
		{SKU: "HIGH", Stockout: StockoutPrediction{Urgency: UrgencyHigh, DaysRemaining: days(12)}},
		{SKU: "CRIT-A", Stockout: StockoutPrediction{Urgency: UrgencyCritical, DaysRemaining: days(1)}},
	}

	SortByRisk(results)

	order := make([]string, len(results))
	for i, r := range results {
		order[i] = r.SKU
	}
	assert.Equal(t, []string{"CRIT-A", "CRIT-B", "HIGH", "LOW", "NONE"}, order)
}

func TestSortByScore(t *testing.T) {
	results := []ProductAnalysis{
		{SKU: "MID", Score: ScoreResult{TotalScore: 50}, Demand: DemandProfile{AnnualDemand: 10}},
		{SKU: "TOP", Score: ScoreResult{TotalScore: 90}},
		{SKU: "MID-BUSY", Score: ScoreResult{TotalScore: 50}, Demand: DemandProfile{AnnualDemand: 400}},
	}

	SortByScore(results)

	assert.Equal(t, "TOP", results[0].SKU)
	assert.Equal(t, "MID-BUSY", results[1].SKU)
	assert.Equal(t, "MID", results[2].SKU)
}
