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

type InventoryRepositoryAdapter struct {
	db *sql.DB
}

func NewInventoryRepositoryAdapter(db *sql.DB) outbound.InventoryRepository {
	return &InventoryRepositoryAdapter{db: db}
}

func (r *InventoryRepositoryAdapter) ListIDs(ctx context.Context, tenantID string) ([]string, error) {
	query := `
		SELECT id
		FROM inventory_items
		WHERE tenant_id = $1
		ORDER BY id
	`
	return queryIDs(ctx, r.db, query, tenantID)
}

func (r *InventoryRepositoryAdapter) FindByID(ctx context.Context, tenantID, itemID string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, tenant_id, sku, name, quantity_on_hand, reorder_point, lead_time_days,
		       last_paid_unit_cost, updated_at
		FROM inventory_items
		WHERE tenant_id = $1 AND id = $2
	`

	var item entity.InventoryItem
	err := r.db.QueryRowContext(ctx, query, tenantID, itemID).Scan(
		&item.ID,
		&item.TenantID,
		&item.SKU,
		&item.Name,
		&item.QuantityOnHand,
		&item.ReorderPoint,
		&item.LeadTimeDays,
		&item.LastPaidUnitCost,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", itemID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to find inventory item by ID: %w", err)
	}
	return &item, nil
}

func (r *InventoryRepositoryAdapter) ConsumedUnits(ctx context.Context, tenantID, itemID string, since, until time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_consumption
		WHERE tenant_id = $1 AND item_id = $2 AND consumed_at >= $3 AND consumed_at < $4
	`

	var consumed float64
	if err := r.db.QueryRowContext(ctx, query, tenantID, itemID, since, until).Scan(&consumed); err != nil {
		return 0, fmt.Errorf("failed to sum consumption: %w", err)
	}
	return consumed, nil
}

func (r *InventoryRepositoryAdapter) ListOffers(ctx context.Context, tenantID, itemID string) ([]entity.SupplierOffer, error) {
	query := `
		SELECT id, item_id, supplier_name, unit_cost, pack_size, bulk_break_qty, bulk_break_cost,
		       valid_from, valid_to
		FROM supplier_offers
		WHERE tenant_id = $1 AND item_id = $2
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier offers: %w", err)
	}
	defer rows.Close()

	offers := []entity.SupplierOffer{}
	for rows.Next() {
		var (
			offer   entity.SupplierOffer
			validTo sql.NullTime
		)
		if err := rows.Scan(
			&offer.ID,
			&offer.ItemID,
			&offer.SupplierName,
			&offer.UnitCost,
			&offer.PackSize,
			&offer.BulkBreakQty,
			&offer.BulkBreakCost,
			&offer.ValidFrom,
			&validTo,
		); err != nil {
			return nil, fmt.Errorf("failed to scan supplier offer: %w", err)
		}
		if validTo.Valid {
			offer.ValidTo = &validTo.Time
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate supplier offers: %w", err)
	}
	return offers, nil
}

func (r *InventoryRepositoryAdapter) OwnedIDs(ctx context.Context, tenantID string, ids []string) (map[string]bool, error) {
	owned := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return owned, nil
	}

	query := `
		SELECT id
		FROM inventory_items
		WHERE tenant_id = $1 AND id = ANY($2)
	`
	found, err := queryIDs(ctx, r.db, query, tenantID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		owned[id] = true
	}
	return owned, nil
}
