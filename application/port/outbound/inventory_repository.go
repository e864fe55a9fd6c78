package outbound

import (
	"context"
	"time"

	"github.com/vendorops/insights/domain/entity"
)

// InventoryRepository reads tenant-scoped stock data. Lookups for an item the
// tenant does not own return domain.ErrEntityNotFound.
type InventoryRepository interface {
	ListIDs(ctx context.Context, tenantID string) ([]string, error)

	FindByID(ctx context.Context, tenantID, itemID string) (*entity.InventoryItem, error)

	// ConsumedUnits sums stock movements out of the item in [since, until)
	ConsumedUnits(ctx context.Context, tenantID, itemID string, since, until time.Time) (float64, error)

	ListOffers(ctx context.Context, tenantID, itemID string) ([]entity.SupplierOffer, error)

	// OwnedIDs filters ids down to the ones the tenant owns
	OwnedIDs(ctx context.Context, tenantID string, ids []string) (map[string]bool, error)
}
