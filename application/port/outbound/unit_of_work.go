package outbound

import (
	"context"

	"github.com/vendorops/insights/domain"
)

// UnitOfWork runs fn inside one transaction. If fn returns an error every
// write made through tx is rolled back and the error is returned unchanged.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}

// TxRepositories are the writers bound to a single transaction.
type TxRepositories interface {
	Prices() PriceWriter
	Audit() AuditWriter
	PurchaseOrders() PurchaseOrderWriter
}

type PriceWriter interface {
	// LockPrice row-locks the product and returns its price and version.
	LockPrice(ctx context.Context, tenantID, productID string) (price float64, version int64, err error)

	// UpdatePrice writes price only if the stored version still equals
	// expectedVersion, then increments it. A mismatch is domain.ErrVersionConflict.
	UpdatePrice(ctx context.Context, tenantID, productID string, price float64, expectedVersion int64) error
}

type AuditWriter interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
}

type PurchaseOrderWriter interface {
	CreateDraft(ctx context.Context, order *domain.PurchaseOrderDraft) error
}
