// internal/repository/postgres/replenishment_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/andresuchdata/replenish-engine/internal/domain"
	"github.com/andresuchdata/replenish-engine/internal/repository"
)

type replenishmentRepository struct {
	db *sqlx.DB
}

func NewReplenishmentRepository(db *sqlx.DB) repository.ReplenishmentRepository {
	return &replenishmentRepository{db: db}
}

func (r *replenishmentRepository) ListEligibleProducts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.Product, error) {
	query := `
        SELECT
            id, sku, name, stock, low_stock_threshold,
            unit_cost, ordering_cost, holding_cost_percent,
            default_lead_time_days, is_active, is_physical
        FROM products
        WHERE is_active = TRUE AND is_physical = TRUE
    `

	var args []interface{}
	var conditions []string
	argCounter := 1

	if len(filter.ProductIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("id = ANY($%d::bigint[])", argCounter))
		args = append(args, pq.Array(filter.ProductIDs))
		argCounter++
	}

	if len(filter.SKUs) > 0 {
		conditions = append(conditions, fmt.Sprintf("sku = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(filter.SKUs))
		argCounter++
	}

	if filter.OnlyWithStock {
		conditions = append(conditions, "stock > 0")
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCounter)
		args = append(args, filter.Limit)
	}

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("error listing eligible products: %w", err)
	}

	return products, nil
}

func (r *replenishmentRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	query := `
        SELECT
            id, sku, name, stock, low_stock_threshold,
            unit_cost, ordering_cost, holding_cost_percent,
            default_lead_time_days, is_active, is_physical
        FROM products
        WHERE id = $1
    `

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, repository.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("error getting product %d: %w", id, err)
	}

	return product, nil
}

func (r *replenishmentRepository) SaleMovementsSince(ctx context.Context, productIDs []int64, since time.Time) ([]domain.StockMovement, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT id, product_id, kind, quantity, occurred_at
        FROM stock_movements
        WHERE kind = $1
          AND product_id = ANY($2::bigint[])
          AND occurred_at >= $3
        ORDER BY occurred_at
    `

	var movements []domain.StockMovement
	err := r.db.SelectContext(ctx, &movements, query, domain.MovementSale, pq.Array(productIDs), since)
	if err != nil {
		return nil, fmt.Errorf("error getting sale movements: %w", err)
	}

	return movements, nil
}

func (r *replenishmentRepository) PreferredSupplierLinks(ctx context.Context, productIDs []int64) ([]domain.SupplierLink, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	query := `
        SELECT id, product_id, supplier_id, lead_time_days, is_preferred, is_active
        FROM supplier_links
        WHERE is_preferred = TRUE
          AND is_active = TRUE
          AND product_id = ANY($1::bigint[])
        ORDER BY product_id, lead_time_days NULLS LAST
    `

	var links []domain.SupplierLink
	if err := r.db.SelectContext(ctx, &links, query, pq.Array(productIDs)); err != nil {
		return nil, fmt.Errorf("error getting supplier links: %w", err)
	}

	return links, nil
}
