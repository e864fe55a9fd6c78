package insight

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

const operationCreatePO = "create_purchase_order"

// CreatePurchaseOrder drafts a purchase order with one line per request line.
// Calling it twice drafts two orders.
func (uc *InsightUseCase) CreatePurchaseOrder(ctx context.Context, tenantID string, req inbound.CreatePurchaseOrderRequest) (*inbound.CreatePurchaseOrderResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("at least one line is required: %w", domain.ErrInvalidLine)
	}

	lines := make([]domain.PurchaseOrderLine, 0, len(req.Lines))
	totals := make([]decimal.Decimal, 0, len(req.Lines))
	itemIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]bool, len(req.Lines))

	for i, l := range req.Lines {
		line := domain.PurchaseOrderLine{
			ID:               uuid.NewString(),
			ItemID:           l.ItemID,
			Quantity:         l.Quantity,
			UnitCostEstimate: l.UnitCostEstimate,
		}
		if !line.Valid() {
			return nil, fmt.Errorf("line %d: %w", i+1, domain.ErrInvalidLine)
		}
		lines = append(lines, line)
		totals = append(totals, valueobject.LineTotal(line.Quantity, line.UnitCostEstimate))
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			itemIDs = append(itemIDs, line.ItemID)
		}
	}

	owned, err := uc.inventory.OwnedIDs(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check item ownership: %w", err)
	}
	for _, id := range itemIDs {
		if !owned[id] {
			return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrEntityNotFound)
		}
	}

	order := &domain.PurchaseOrderDraft{
		ID:                 uuid.NewString(),
		TenantID:           tenantID,
		Status:             domain.PurchaseOrderStatusDraft,
		Lines:              lines,
		TotalEstimatedCost: valueobject.SumCents(totals...),
		CreatedAt:          uc.now(),
	}

	err = uc.uow.Do(ctx, func(ctx context.Context, tx outbound.TxRepositories) error {
		return tx.PurchaseOrders().CreateDraft(ctx, order)
	})

	fields := map[string]interface{}{
		"order_id":   order.ID,
		"line_count": len(lines),
		"total_cost": order.TotalEstimatedCost,
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.LogCommitEvent(ctx, uc.logger, operationCreatePO, false, fields)
		uc.metrics.ObserveCommit(operationCreatePO, outbound.OutcomeError)
		return nil, err
	}
	logger.LogCommitEvent(ctx, uc.logger, operationCreatePO, true, fields)
	uc.metrics.ObserveCommit(operationCreatePO, outbound.OutcomeSuccess)

	return &inbound.CreatePurchaseOrderResponse{
		OrderID:   order.ID,
		TotalCost: order.TotalEstimatedCost,
		LineCount: len(lines),
		Status:    string(order.Status),
	}, nil
}
