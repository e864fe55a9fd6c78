package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/engine"
	"github.com/vendorops/insights/domain/entity"
	"github.com/vendorops/insights/domain/valueobject"
)

// AssemblePricingSignal gathers the facts the pricing rules need for one product.
func (uc *InsightUseCase) AssemblePricingSignal(ctx context.Context, tenantID, productID string, windowDays int) (*domain.PricingSignal, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	window, err := valueobject.NewTrailingWindow(windowDays, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.assemblePricing(ctx, tenantID, productID, window)
}

// AssembleInventorySignal gathers the facts the reorder rules need for one item.
func (uc *InsightUseCase) AssembleInventorySignal(ctx context.Context, tenantID, itemID string, windowDays int) (*domain.InventorySignal, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	window, err := valueobject.NewTrailingWindow(windowDays, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.assembleInventory(ctx, tenantID, itemID, window)
}

func (uc *InsightUseCase) assemblePricing(ctx context.Context, tenantID, productID string, window valueobject.TrailingWindow) (*domain.PricingSignal, error) {
	product, err := uc.products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if !product.BelongsTo(tenantID) {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrEntityNotFound)
	}

	sales, err := uc.products.CountSales(ctx, tenantID, productID, window.Start(), window.End())
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}
	observed, err := uc.competitors.ListPrices(ctx, tenantID, productID, window.Start(), window.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list competitor prices: %w", err)
	}
	if sales == 0 && len(observed) == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNoSignal)
	}

	median, spread := engine.CompetitorStats(observed)
	return &domain.PricingSignal{
		EntityID:         product.ID,
		CurrentPrice:     product.Price,
		BaseCost:         product.BaseCost,
		FeeEstimate:      engine.FeeEstimate(product.Price),
		MarginPct:        engine.MarginPct(product.Price, product.BaseCost),
		TrailingSales:    sales,
		CompetitorMedian: median,
		CompetitorRange:  spread,
		TargetMargin:     domain.MarginRange{Low: product.TargetMarginLow, High: product.TargetMarginHigh},
		MinPrice:         product.MinPrice,
		MaxPrice:         product.MaxPrice,
	}, nil
}

func (uc *InsightUseCase) assembleInventory(ctx context.Context, tenantID, itemID string, window valueobject.TrailingWindow) (*domain.InventorySignal, error) {
	item, err := uc.inventory.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item.TenantID != tenantID {
		return nil, fmt.Errorf("inventory item %s: %w", itemID, domain.ErrEntityNotFound)
	}

	consumed, err := uc.inventory.ConsumedUnits(ctx, tenantID, itemID, window.Start(), window.End())
	if err != nil {
		return nil, fmt.Errorf("failed to sum consumption: %w", err)
	}
	offers, err := uc.inventory.ListOffers(ctx, tenantID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier offers: %w", err)
	}
	best := bestOffer(offers, window.End())

	if item.IsUntracked() && consumed <= 0 && best == nil {
		return nil, fmt.Errorf("inventory item %s: %w", itemID, domain.ErrNoSignal)
	}

	return &domain.InventorySignal{
		EntityID:         item.ID,
		QuantityOnHand:   item.QuantityOnHand,
		ReorderPoint:     item.ReorderPoint,
		LeadTimeDays:     item.LeadTimeDays,
		DailyRunRate:     engine.DailyRunRate(consumed, window.Days(), item.QuantityOnHand),
		BestOffer:        best,
		LastPaidUnitCost: item.LastPaidUnitCost,
	}, nil
}

// bestOffer picks the valid offer with the lowest effective unit cost. Ties keep
// the earlier offer so repository order decides.
func bestOffer(offers []entity.SupplierOffer, at time.Time) *domain.BestOffer {
	var best *entity.SupplierOffer
	for i := range offers {
		offer := &offers[i]
		if !offer.IsValidAt(at) {
			continue
		}
		if best == nil || offer.LowestUnitCost() < best.LowestUnitCost() {
			best = offer
		}
	}
	if best == nil {
		return nil
	}
	return &domain.BestOffer{
		OfferID:       best.ID,
		SupplierName:  best.SupplierName,
		UnitCost:      best.UnitCost,
		PackSize:      best.PackSize,
		BulkBreakQty:  best.BulkBreakQty,
		BulkBreakCost: best.BulkBreakCost,
	}
}
