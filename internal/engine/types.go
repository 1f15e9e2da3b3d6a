package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/replenish-engine/internal/domain"
)

// Fixed modeling constants. The service level is deliberately not
// configurable; z = 1.65 is the one-tailed 95% quantile.
const (
	DemandWindowDays      = 365
	FallbackWindowDays    = 90
	FallbackMultiplier    = 4.0
	VariabilityWindowDays = 90
	DefaultLeadTimeDays   = 7
	ServiceLevel          = 0.95
	ServiceLevelZ         = 1.65
)

// DemandProfile describes how fast a product sells.
type DemandProfile struct {
	AnnualDemand float64 `json:"annual_demand"`
	DailyDemand  float64 `json:"daily_demand"`
	DemandStdDev float64 `json:"demand_stddev"`
}

// HasConsumption reports whether any sale activity was detected.
func (p DemandProfile) HasConsumption() bool {
	return p.DailyDemand > 0
}

// EOQResult is the outcome of the Wilson economic order quantity formula.
// A zero EOQ with InsufficientData set is a valid informational result,
// not an error.
type EOQResult struct {
	EOQ              int     `json:"eoq"`
	RawEOQ           float64 `json:"-"`
	OrdersPerYear    float64 `json:"orders_per_year"`
	TotalAnnualCost  float64 `json:"total_annual_cost"`
	InsufficientData bool    `json:"insufficient_data"`
}

// ReorderPointResult combines demand, lead time and variability into the
// stock level at which a new order should be placed.
type ReorderPointResult struct {
	ReorderPoint    int     `json:"reorder_point"`
	RawReorderPoint float64 `json:"-"`
	SafetyStock     int     `json:"safety_stock"`
	ServiceLevel    float64 `json:"service_level"`
	ShouldOrder     bool    `json:"should_order"`
}

// ScoreResult is the composite 0-100 priority score.
type ScoreResult struct {
	FrequencyScore   int `json:"frequency_score"`
	ReliabilityScore int `json:"reliability_score"`
	CriticalityScore int `json:"criticality_score"`
	TotalScore       int `json:"total_score"`
}

// Urgency is the discrete stockout urgency tier.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Rank orders tiers from most to least urgent. Unknown tiers sort last.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 3
	}
	return 4
}

// Valid reports whether u is one of the defined tiers.
func (u Urgency) Valid() bool {
	return u.Rank() < 4
}

// StockoutPrediction projects when stock runs out. DaysRemaining and
// PredictedDate are nil when no consumption is measurable.
type StockoutPrediction struct {
	DaysRemaining *float64   `json:"days_remaining"`
	PredictedDate *time.Time `json:"predicted_date"`
	Urgency       Urgency    `json:"urgency"`
	Message       string     `json:"message"`
}

// ProductAnalysis is the full per-product result tuple handed to consumers.
type ProductAnalysis struct {
	ProductID             int64              `json:"product_id"`
	SKU                   string             `json:"sku"`
	Name                  string             `json:"name"`
	Stock                 int                `json:"stock"`
	LowStockThreshold     int                `json:"low_stock_threshold"`
	LeadTimeDays          int                `json:"lead_time_days"`
	Demand                DemandProfile      `json:"demand"`
	EOQ                   EOQResult          `json:"eoq"`
	Reorder               ReorderPointResult `json:"reorder"`
	Score                 ScoreResult        `json:"score"`
	Stockout              StockoutPrediction `json:"stockout"`
	RecommendedOrderQty   int                `json:"recommended_order_qty"`
	RecommendedOrderValue decimal.Decimal    `json:"recommended_order_value"`
	ComputedAt            time.Time          `json:"computed_at"`
}

// ProductInputs is one product's consistent read of master data, its sale
// history and its supplier links.
type ProductInputs struct {
	Product   domain.Product
	Movements []domain.StockMovement
	Links     []domain.SupplierLink
}

// ProductFailure records a product excluded from a batch.
type ProductFailure struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Err       error  `json:"-"`
	Reason    string `json:"reason"`
}

// BatchResult collects per-product successes and the side list of failures
// from a fail-soft aggregation run.
type BatchResult struct {
	Results  []ProductAnalysis `json:"results"`
	Failures []ProductFailure  `json:"failures"`
}
