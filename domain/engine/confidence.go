package engine

import "github.com/vendorops/insights/domain"

// Bounds limits an aggregated confidence. A nil Upper leaves it unbounded above.
type Bounds struct {
	Lower int
	Upper *int
}

var (
	pricingCeiling = PricingConfidenceCeiling

	PricingBounds   = Bounds{Lower: PricingConfidenceFloor, Upper: &pricingCeiling}
	InventoryBounds = Bounds{Lower: 0}
)

// Aggregate sums the baseline with every delta and clamps to bounds.
func Aggregate(baseline int, bounds Bounds, deltas ...int) int {
	score := baseline
	for _, d := range deltas {
		score += d
	}
	if score < bounds.Lower {
		score = bounds.Lower
	}
	if bounds.Upper != nil && score > *bounds.Upper {
		score = *bounds.Upper
	}
	return score
}

// PricingQualityDeltas scores how much evidence backs a pricing signal,
// independently of which rules fired.
func PricingQualityDeltas(sig domain.PricingSignal) []int {
	var deltas []int
	if sig.TrailingSales >= HighVolumeSales {
		deltas = append(deltas, 10)
	}
	if sig.HasCompetitorData() {
		deltas = append(deltas, 10)
	}
	if sig.CompetitorMedian == nil {
		deltas = append(deltas, -10)
	}
	return deltas
}

// InventoryDeltas scores evidence and urgency for an inventory signal.
func InventoryDeltas(sig domain.InventorySignal, stockoutRisk float64) []int {
	var deltas []int
	if sig.QuantityOnHand > 0 {
		deltas = append(deltas, 10)
	}
	if sig.BestOffer != nil {
		deltas = append(deltas, 10)
	}
	if sig.LeadTimeDays > 0 {
		deltas = append(deltas, 10)
	}
	if stockoutRisk > ElevatedStockoutRisk {
		deltas = append(deltas, 10)
	}
	return deltas
}
