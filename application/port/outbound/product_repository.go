package outbound

import (
	"context"
	"time"

	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/entity"
)

// ProductRepository reads tenant-scoped catalog data. Lookups for a product the
// tenant does not own return domain.ErrEntityNotFound.
type ProductRepository interface {
	// ListIDs returns the tenant's active product ids in a stable order
	ListIDs(ctx context.Context, tenantID string) ([]string, error)

	FindByID(ctx context.Context, tenantID, productID string) (*entity.Product, error)

	// CountSales returns units sold in [since, until)
	CountSales(ctx context.Context, tenantID, productID string, since, until time.Time) (int, error)

	// MatchSKUs maps normalized SKUs to product ids; unknown SKUs are absent from the result
	MatchSKUs(ctx context.Context, tenantID string, skus []string) (map[string]string, error)

	// ListPriceHistory returns audit entries newest first
	ListPriceHistory(ctx context.Context, tenantID, productID string, limit int) ([]domain.AuditEntry, error)
}

// CompetitorPriceRepository stores the competitor feed that supplies pricing signals.
type CompetitorPriceRepository interface {
	ListPrices(ctx context.Context, tenantID, productID string, since, until time.Time) ([]float64, error)

	// Upsert writes observations keyed by (product, competitor, observed day) and
	// returns how many rows were written
	Upsert(ctx context.Context, tenantID string, observations []domain.CompetitorObservation) (int, error)
}
