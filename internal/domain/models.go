// internal/domain/models.go
package domain

import "time"

// MovementKind classifies a stock movement. Only sales feed demand
// estimation; the other kinds are carried for completeness of the log.
type MovementKind string

const (
	MovementSale       MovementKind = "sale"
	MovementReception  MovementKind = "reception"
	MovementAdjustment MovementKind = "adjustment"
	MovementLoss       MovementKind = "loss"
	MovementInitial    MovementKind = "initial"
)

// Product is the master record the engine analyzes. It is owned by the
// surrounding order/sales system; the engine never writes to it.
type Product struct {
	ID                  int64   `json:"id" db:"id"`
	SKU                 string  `json:"sku" db:"sku"`
	Name                string  `json:"name" db:"name"`
	Stock               int     `json:"stock" db:"stock"`
	LowStockThreshold   int     `json:"low_stock_threshold" db:"low_stock_threshold"`
	UnitCost            float64 `json:"unit_cost" db:"unit_cost"`
	OrderingCost        float64 `json:"ordering_cost" db:"ordering_cost"`
	HoldingCostPercent  float64 `json:"holding_cost_percent" db:"holding_cost_percent"`
	DefaultLeadTimeDays *int    `json:"default_lead_time_days" db:"default_lead_time_days"`
	IsActive            bool    `json:"is_active" db:"is_active"`
	IsPhysical          bool    `json:"is_physical" db:"is_physical"`
}

// StockMovement is one entry of the append-only movement log. Sale
// quantities are negative, receptions positive.
type StockMovement struct {
	ID         int64        `json:"id" db:"id"`
	ProductID  int64        `json:"product_id" db:"product_id"`
	Kind       MovementKind `json:"kind" db:"kind"`
	Quantity   float64      `json:"quantity" db:"quantity"`
	OccurredAt time.Time    `json:"occurred_at" db:"occurred_at"`
}

// SupplierLink ties a product to a supplier with a replenishment lead time.
type SupplierLink struct {
	ID           int64 `json:"id" db:"id"`
	ProductID    int64 `json:"product_id" db:"product_id"`
	SupplierID   int64 `json:"supplier_id" db:"supplier_id"`
	LeadTimeDays *int  `json:"lead_time_days" db:"lead_time_days"`
	IsPreferred  bool  `json:"is_preferred" db:"is_preferred"`
	IsActive     bool  `json:"is_active" db:"is_active"`
}

// AnalysisFilter narrows which products an analytics request covers.
type AnalysisFilter struct {
	ProductIDs    []int64  `json:"product_ids"`
	SKUs          []string `json:"skus"`
	OnlyWithStock bool     `json:"only_with_stock"`
	Urgency       string   `json:"urgency"`
	Limit         int      `json:"limit"`
}
