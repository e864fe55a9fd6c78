package insight

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

const operationApplyPrice = "apply_price"

// ApplyPrice writes an accepted price and its audit entry in one transaction.
// Writers of the same product are serialized by the entity lock and the row
// lock; the version check catches anything that slips past both.
func (uc *InsightUseCase) ApplyPrice(ctx context.Context, tenantID string, req inbound.ApplyPriceRequest) (*inbound.ApplyPriceResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	if math.IsInf(req.NewPrice, 0) || math.IsNaN(req.NewPrice) {
		return nil, domain.ErrInvalidPrice
	}
	// the stored price is in cents, so validate what will actually be written
	newPrice := valueobject.RoundCents(req.NewPrice)
	if newPrice <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.ProductID == "" {
		return nil, fmt.Errorf("product id is required: %w", domain.ErrEntityNotFound)
	}

	key := fmt.Sprintf("price:%s:%s", tenantID, req.ProductID)
	release, err := uc.locker.Acquire(ctx, key, uc.lockTTL)
	if err != nil {
		uc.metrics.ObserveCommit(operationApplyPrice, outbound.OutcomeError)
		return nil, fmt.Errorf("failed to lock product %s: %w", req.ProductID, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn(ctx, "Failed to release entity lock", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}()

	var resp *inbound.ApplyPriceResponse
	err = uc.uow.Do(ctx, func(ctx context.Context, tx outbound.TxRepositories) error {
		previous, version, err := tx.Prices().LockPrice(ctx, tenantID, req.ProductID)
		if err != nil {
			return err
		}
		if err := tx.Prices().UpdatePrice(ctx, tenantID, req.ProductID, newPrice, version); err != nil {
			return err
		}

		entry := &domain.AuditEntry{
			ID:            uuid.NewString(),
			TenantID:      tenantID,
			ProductID:     req.ProductID,
			PreviousPrice: previous,
			NewPrice:      newPrice,
			Actor:         domain.ActorEngine,
			Reason:        req.Reason,
			CreatedAt:     uc.now(),
		}
		if err := tx.Audit().Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}

		resp = &inbound.ApplyPriceResponse{
			ProductID: req.ProductID,
			Previous:  previous,
			New:       newPrice,
			AuditID:   entry.ID,
		}
		return nil
	})

	fields := map[string]interface{}{
		"product_id": req.ProductID,
		"new_price":  newPrice,
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.LogCommitEvent(ctx, uc.logger, operationApplyPrice, false, fields)
		uc.metrics.ObserveCommit(operationApplyPrice, outbound.OutcomeError)
		return nil, err
	}

	fields["previous_price"] = resp.Previous
	logger.LogCommitEvent(ctx, uc.logger, operationApplyPrice, true, fields)
	uc.metrics.ObserveCommit(operationApplyPrice, outbound.OutcomeSuccess)
	return resp, nil
}
