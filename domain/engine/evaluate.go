package engine

import (
	"fmt"

	"github.com/vendorops/insights/domain"
)

// Engine runs rule evaluation, confidence aggregation, the admission filter and
// the action gate for any signal.
type Engine struct {
	pricing *PricingEvaluator
}

func New(pricing *PricingEvaluator) *Engine {
	if pricing == nil {
		pricing = NewPricingEvaluator()
	}
	return &Engine{pricing: pricing}
}

// Evaluate returns the recommendation with its action flags attached and
// whether it passes the admission filter.
func (e *Engine) Evaluate(sig domain.Signal) (domain.Recommendation, bool, error) {
	switch s := sig.(type) {
	case domain.PricingSignal:
		rec := e.pricing.Evaluate(s)
		actions := GatePricing(s, rec)
		rec.Pricing = &actions
		return rec, Admit(rec, 0), nil
	case domain.InventorySignal:
		rec := EvaluateInventory(s)
		actions := GateInventory(s, rec)
		rec.Inventory = &actions
		risk := StockoutRisk(s.QuantityOnHand, s.LeadTimeDays, s.DailyRunRate)
		return rec, Admit(rec, risk), nil
	default:
		return domain.Recommendation{}, false, fmt.Errorf("unsupported signal type %T", sig)
	}
}
