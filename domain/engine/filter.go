package engine

import "github.com/vendorops/insights/domain"

// Admit decides whether a recommendation is surfaced. Inventory urgency
// overrides low confidence; pricing never does. stockoutRisk is the unrounded
// risk percentage and is ignored for pricing.
func Admit(rec domain.Recommendation, stockoutRisk float64) bool {
	switch rec.Domain {
	case domain.InsightDomainPricing:
		return rec.Confidence > MinAdmitConfidence
	case domain.InsightDomainInventory:
		return rec.Confidence > MinAdmitConfidence || stockoutRisk > MinAdmitStockoutRisk
	default:
		return false
	}
}
