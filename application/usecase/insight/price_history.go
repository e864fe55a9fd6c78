package insight

import (
	"context"

	"github.com/vendorops/insights/domain"
)

// ListPriceHistory returns the product's audit trail, newest first.
func (uc *InsightUseCase) ListPriceHistory(ctx context.Context, tenantID, productID string, limit int) ([]domain.AuditEntry, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	if _, err := uc.products.FindByID(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	return uc.products.ListPriceHistory(ctx, tenantID, productID, limit)
}
