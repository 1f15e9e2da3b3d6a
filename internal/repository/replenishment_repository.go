// internal/repository/replenishment_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andresuchdata/replenish-engine/internal/domain"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ReplenishmentRepository provides the read-only snapshot of products,
// sale history and supplier links the analytics engine consumes.
type ReplenishmentRepository interface {
	// ListEligibleProducts returns active physical products, optionally
	// restricted to those with stock on hand or to explicit IDs/SKUs.
	ListEligibleProducts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.Product, error)

	// GetProduct fetches one product by ID; ErrNotFound when missing.
	GetProduct(ctx context.Context, id int64) (domain.Product, error)

	// SaleMovementsSince returns sale-kind movements on or after since for
	// the given products, oldest first.
	SaleMovementsSince(ctx context.Context, productIDs []int64, since time.Time) ([]domain.StockMovement, error)

	// PreferredSupplierLinks returns preferred+active supplier links for
	// the given products.
	PreferredSupplierLinks(ctx context.Context, productIDs []int64) ([]domain.SupplierLink, error)
}
