package engine

import (
	"github.com/vendorops/insights/domain"
)

// EvaluateInventory sizes a reorder directly; there is no value-overwriting
// rule chain for inventory, only conditional rationale.
func EvaluateInventory(sig domain.InventorySignal) domain.Recommendation {
	risk := StockoutRisk(sig.QuantityOnHand, sig.LeadTimeDays, sig.DailyRunRate)
	suggested := SuggestedReorderQuantity(sig.LeadTimeDays, sig.DailyRunRate, sig.QuantityOnHand)

	rationale := []string{}
	if risk > HighStockoutRisk {
		rationale = append(rationale, ReasonHighStockoutRisk)
	}
	if hasSignificantSavings(sig) {
		rationale = append(rationale, ReasonCostSavingsAvailable)
	}
	if sig.QuantityOnHand <= sig.ReorderPoint {
		rationale = append(rationale, ReasonBelowReorderPoint)
	}

	return domain.Recommendation{
		EntityID:      sig.EntityID,
		Domain:        domain.InsightDomainInventory,
		CurrentValue:  sig.QuantityOnHand,
		ProposedValue: suggested,
		Confidence:    Aggregate(BaselineConfidence, InventoryBounds, InventoryDeltas(sig, risk)...),
		Rationale:     rationale,
		MetricName:    domain.MetricStockoutRisk,
		Metric:        round2(risk),
	}
}

func hasSignificantSavings(sig domain.InventorySignal) bool {
	if sig.BestOffer == nil || sig.LastPaidUnitCost <= 0 {
		return false
	}
	return sig.BestOffer.UnitCost <= sig.LastPaidUnitCost*SignificantSavingsRatio
}
