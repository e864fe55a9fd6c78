package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/entity"
)

type ProductRepositoryAdapter struct {
	db *sql.DB
}

func NewProductRepositoryAdapter(db *sql.DB) outbound.ProductRepository {
	return &ProductRepositoryAdapter{
		db: db,
	}
}

func (r *ProductRepositoryAdapter) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	query := `
		SELECT id
		FROM products
		WHERE tenant_id = $1 AND active
		ORDER BY id
	`
	return queryIDs(ctx, r.db, query, tenantID)
}

func (r *ProductRepositoryAdapter) FindByID(ctx context.Context, tenantID, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id cannot be empty: %w", domain.ErrEntityNotFound)
	}

	query := `
		SELECT id, tenant_id, sku, name, price, base_cost, target_margin_low, target_margin_high,
		       min_price, max_price, price_version, updated_at
		FROM products
		WHERE tenant_id = $1 AND id = $2
	`

	var (
		product  entity.Product
		minPrice sql.NullFloat64
		maxPrice sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, tenantID, productID).Scan(
		&product.ID,
		&product.TenantID,
		&product.SKU,
		&product.Name,
		&product.Price,
		&product.BaseCost,
		&product.TargetMarginLow,
		&product.TargetMarginHigh,
		&minPrice,
		&maxPrice,
		&product.PriceVersion,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	if minPrice.Valid {
		product.MinPrice = &minPrice.Float64
	}
	if maxPrice.Valid {
		product.MaxPrice = &maxPrice.Float64
	}
	return &product, nil
}

func (r *ProductRepositoryAdapter) CountSales(ctx context.Context, tenantID, productID string, since, until time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE tenant_id = $1 AND product_id = $2 AND sold_at >= $3 AND sold_at < $4
	`

	var units int
	if err := r.db.QueryRowContext(ctx, query, tenantID, productID, since, until).Scan(&units); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return units, nil
}

func (r *ProductRepositoryAdapter) MatchSKUs(ctx context.Context, tenantID string, skus []string) (map[string]string, error) {
	matched := make(map[string]string, len(skus))
	if len(skus) == 0 {
		return matched, nil
	}

	query := `
		SELECT upper(btrim(sku)), id
		FROM products
		WHERE tenant_id = $1 AND upper(btrim(sku)) = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, pq.Array(skus))
	if err != nil {
		return nil, fmt.Errorf("failed to match skus: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sku, id string
		if err := rows.Scan(&sku, &id); err != nil {
			return nil, fmt.Errorf("failed to scan sku match: %w", err)
		}
		matched[sku] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sku matches: %w", err)
	}
	return matched, nil
}

func (r *ProductRepositoryAdapter) ListPriceHistory(ctx context.Context, tenantID, productID string, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT id, tenant_id, product_id, previous_price, new_price, actor, COALESCE(reason, ''), created_at
		FROM price_audit
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ProductID, &e.PreviousPrice, &e.NewPrice, &e.Actor, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price history: %w", err)
	}
	return entries, nil
}

// queryIDs runs a single-column id query and collects the result in order.
func queryIDs(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ids: %w", err)
	}
	return ids, nil
}
