package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
)

type UnitOfWorkAdapter struct {
	db *sql.DB
}

func NewUnitOfWorkAdapter(db *sql.DB) outbound.UnitOfWork {
	return &UnitOfWorkAdapter{db: db}
}

// Do commits when fn returns nil and rolls back otherwise, including on panic.
func (u *UnitOfWorkAdapter) Do(ctx context.Context, fn func(ctx context.Context, tx outbound.TxRepositories) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &txRepositories{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txRepositories struct {
	tx *sql.Tx
}

func (r *txRepositories) Prices() outbound.PriceWriter                 { return &priceWriter{tx: r.tx} }
func (r *txRepositories) Audit() outbound.AuditWriter                  { return &auditWriter{tx: r.tx} }
func (r *txRepositories) PurchaseOrders() outbound.PurchaseOrderWriter { return &purchaseOrderWriter{tx: r.tx} }

type priceWriter struct {
	tx *sql.Tx
}

func (w *priceWriter) LockPrice(ctx context.Context, tenantID, productID string) (float64, int64, error) {
	query := `
		SELECT price, price_version
		FROM products
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	var (
		price   float64
		version int64
	)
	err := w.tx.QueryRowContext(ctx, query, tenantID, productID).Scan(&price, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("product %s: %w", productID, domain.ErrEntityNotFound)
		}
		return 0, 0, fmt.Errorf("failed to lock product price: %w", err)
	}
	return price, version, nil
}

func (w *priceWriter) UpdatePrice(ctx context.Context, tenantID, productID string, price float64, expectedVersion int64) error {
	query := `
		UPDATE products
		SET price = $3, price_version = price_version + 1, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND price_version = $4
	`

	result, err := w.tx.ExecContext(ctx, query, tenantID, productID, price, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s at version %d: %w", productID, expectedVersion, domain.ErrVersionConflict)
	}
	return nil
}

type auditWriter struct {
	tx *sql.Tx
}

func (w *auditWriter) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO price_audit (id, tenant_id, product_id, previous_price, new_price, actor, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	reason := sql.NullString{String: entry.Reason, Valid: entry.Reason != ""}
	_, err := w.tx.ExecContext(ctx, query,
		entry.ID,
		entry.TenantID,
		entry.ProductID,
		entry.PreviousPrice,
		entry.NewPrice,
		string(entry.Actor),
		reason,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

type purchaseOrderWriter struct {
	tx *sql.Tx
}

func (w *purchaseOrderWriter) CreateDraft(ctx context.Context, order *domain.PurchaseOrderDraft) error {
	header := `
		INSERT INTO purchase_orders (id, tenant_id, status, total_estimated_cost, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := w.tx.ExecContext(ctx, header, order.ID, order.TenantID, string(order.Status), order.TotalEstimatedCost, order.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}

	line := `
		INSERT INTO purchase_order_lines (id, order_id, item_id, quantity, unit_cost_estimate)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, l := range order.Lines {
		if _, err := w.tx.ExecContext(ctx, line, l.ID, order.ID, l.ItemID, l.Quantity, l.UnitCostEstimate); err != nil {
			return fmt.Errorf("failed to insert purchase order line: %w", err)
		}
	}
	return nil
}
