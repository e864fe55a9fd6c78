package engine

import (
	"math"

	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
)

// GatePricing derives advisory flags for a pricing recommendation.
func GatePricing(sig domain.PricingSignal, rec domain.Recommendation) domain.PricingActions {
	actions := domain.PricingActions{
		FloorWarning: rec.ProposedValue <= (sig.BaseCost+sig.FeeEstimate)*FloorWarningMultiplier,
	}
	if sig.CurrentPrice > 0 {
		change := math.Abs(rec.ProposedValue-sig.CurrentPrice) / sig.CurrentPrice
		actions.ApplyPrice = change > AutoApplyPriceChange
	}
	if sig.TrailingSales == 0 {
		actions.InventoryNote = InventoryNoteNoRecentSales
	}
	return actions
}

// GateInventory derives whether to draft a purchase order and what it would cost.
func GateInventory(sig domain.InventorySignal, rec domain.Recommendation) domain.InventoryActions {
	qty := rec.ProposedValue
	actions := domain.InventoryActions{
		CreatePO:      qty > 0 && rec.Confidence > CreatePOConfidence,
		OrderQuantity: qty,
	}

	pack := 1.0
	if sig.BestOffer != nil && sig.BestOffer.PackSize > 1 {
		pack = float64(sig.BestOffer.PackSize)
	}
	if qty > 0 {
		// whole packs; the epsilon absorbs float noise such as 16.000000000000004
		actions.OrderQuantity = math.Ceil(qty/pack-1e-9) * pack
	}

	unitCost := sig.LastPaidUnitCost
	if offer := sig.BestOffer; offer != nil {
		unitCost = offer.UnitCost
		if offer.BulkBreakQty > 0 && offer.BulkBreakCost > 0 && actions.OrderQuantity >= float64(offer.BulkBreakQty) {
			unitCost = offer.BulkBreakCost
		}
	}
	actions.EstimatedUnitCost = unitCost
	actions.EstimatedCost = valueobject.SumCents(valueobject.LineTotal(actions.OrderQuantity, unitCost))
	return actions
}
