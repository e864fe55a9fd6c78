package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
)

type CompetitorPriceRepositoryAdapter struct {
	db *sql.DB
}

func NewCompetitorPriceRepositoryAdapter(db *sql.DB) outbound.CompetitorPriceRepository {
	return &CompetitorPriceRepositoryAdapter{db: db}
}

func (r *CompetitorPriceRepositoryAdapter) ListPrices(ctx context.Context, tenantID, productID string, since, until time.Time) ([]float64, error) {
	query := `
		SELECT price
		FROM competitor_prices
		WHERE tenant_id = $1 AND product_id = $2 AND observed_at >= $3 AND observed_at < $4
		ORDER BY observed_at
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, productID, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitor prices: %w", err)
	}
	defer rows.Close()

	prices := []float64{}
	for rows.Next() {
		var price float64
		if err := rows.Scan(&price); err != nil {
			return nil, fmt.Errorf("failed to scan competitor price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate competitor prices: %w", err)
	}
	return prices, nil
}

// Upsert writes the batch in one transaction. A later observation for the same
// product, competitor and day replaces the earlier one.
func (r *CompetitorPriceRepositoryAdapter) Upsert(ctx context.Context, tenantID string, observations []domain.CompetitorObservation) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO competitor_prices (tenant_id, product_id, competitor, price, observed_on, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, competitor, observed_on)
		DO UPDATE SET price = EXCLUDED.price, observed_at = EXCLUDED.observed_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare competitor upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, obs := range observations {
		observedOn := obs.ObservedAt.UTC().Format("2006-01-02")
		if _, err := stmt.ExecContext(ctx, tenantID, obs.ProductID, obs.Competitor, obs.Price, observedOn, obs.ObservedAt); err != nil {
			return 0, fmt.Errorf("failed to upsert competitor price for %s: %w", obs.SKU, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit competitor prices: %w", err)
	}
	return written, nil
}
