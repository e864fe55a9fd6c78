package engine

import (
	"math"

	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
)

// Rationale strings, in the order rules emit them.
const (
	ReasonMarginBelowTarget    = "margin below target range"
	ReasonCompetitorsHigher    = "competitors pricing higher"
	ReasonLowSalesVolume       = "low sales volume"
	ReasonCompetitorsMuchLower = "competitors pricing significantly lower"
	ReasonHighMarginGoodSales  = "high margin with good sales"
	ReasonRoomForPriceIncrease = "room for price increase"
	ReasonHighStockoutRisk     = "high stockout risk"
	ReasonCostSavingsAvailable = "significant cost savings available"
	ReasonBelowReorderPoint    = "below reorder point"
	InventoryNoteNoRecentSales = "no sales in window; review stock before repricing"
)

// PricingRule is one step of the ordered pricing patch sequence. When When
// fires, Propose overwrites the working price, and the delta and rationale are
// appended to whatever earlier rules contributed.
type PricingRule struct {
	Name            string
	When            func(sig domain.PricingSignal) bool
	Propose         func(sig domain.PricingSignal) float64
	ConfidenceDelta int
	Rationale       []string
}

// DefaultPricingRules returns the production rule chain. Order matters: the
// most specific policy comes last so its price wins.
func DefaultPricingRules() []PricingRule {
	return []PricingRule{
		{
			Name: "margin-low-vs-competitor-high",
			When: func(sig domain.PricingSignal) bool {
				return sig.MarginPct < sig.TargetMargin.Low &&
					sig.CompetitorMedian != nil && *sig.CompetitorMedian > sig.CurrentPrice
			},
			Propose: func(sig domain.PricingSignal) float64 {
				p := sig.CurrentPrice * 1.10
				if sig.MaxPrice != nil {
					p = math.Min(p, *sig.MaxPrice)
				}
				if sig.CompetitorRange != nil {
					p = math.Min(p, sig.CompetitorRange.Max)
				}
				return p
			},
			ConfidenceDelta: 15,
			Rationale:       []string{ReasonMarginBelowTarget, ReasonCompetitorsHigher},
		},
		{
			Name: "low-sales-vs-competitor-low",
			When: func(sig domain.PricingSignal) bool {
				return sig.TrailingSales < 5 &&
					sig.CompetitorMedian != nil && *sig.CompetitorMedian < sig.CurrentPrice*0.80
			},
			Propose: func(sig domain.PricingSignal) float64 {
				floor := CostFloor(sig)
				lower := floor
				if sig.MinPrice != nil {
					lower = *sig.MinPrice
				}
				competitorLow := floor
				if sig.CompetitorRange != nil {
					competitorLow = sig.CompetitorRange.Min
				}
				return math.Max(sig.CurrentPrice*0.90, math.Max(lower, competitorLow))
			},
			ConfidenceDelta: 10,
			Rationale:       []string{ReasonLowSalesVolume, ReasonCompetitorsMuchLower},
		},
		{
			Name: "high-margin-good-sales",
			When: func(sig domain.PricingSignal) bool {
				return sig.MarginPct > sig.TargetMargin.High && sig.TrailingSales > 10 &&
					sig.CompetitorMedian != nil && *sig.CompetitorMedian > sig.CurrentPrice
			},
			Propose: func(sig domain.PricingSignal) float64 {
				return math.Min(sig.CurrentPrice*1.05, *sig.CompetitorMedian)
			},
			ConfidenceDelta: 10,
			Rationale:       []string{ReasonHighMarginGoodSales, ReasonRoomForPriceIncrease},
		},
	}
}

// CostFloor is the lowest price that still earns the target low margin on cost.
func CostFloor(sig domain.PricingSignal) float64 {
	return sig.BaseCost + sig.FeeEstimate + sig.BaseCost*sig.TargetMargin.Low/100
}

// PricingEvaluator folds a rule chain over a pricing signal.
type PricingEvaluator struct {
	rules []PricingRule
}

// NewPricingEvaluator uses DefaultPricingRules when no rules are given.
func NewPricingEvaluator(rules ...PricingRule) *PricingEvaluator {
	if len(rules) == 0 {
		rules = DefaultPricingRules()
	}
	return &PricingEvaluator{rules: rules}
}

// Evaluate runs the rule chain and confidence aggregation. The signal is
// passed by value and never modified.
func (e *PricingEvaluator) Evaluate(sig domain.PricingSignal) domain.Recommendation {
	proposed := sig.CurrentPrice
	rationale := []string{}
	var deltas []int

	for _, rule := range e.rules {
		if !rule.When(sig) {
			continue
		}
		proposed = rule.Propose(sig)
		deltas = append(deltas, rule.ConfidenceDelta)
		rationale = append(rationale, rule.Rationale...)
	}
	deltas = append(deltas, PricingQualityDeltas(sig)...)

	proposed = valueobject.RoundCents(proposed)
	return domain.Recommendation{
		EntityID:      sig.EntityID,
		Domain:        domain.InsightDomainPricing,
		CurrentValue:  sig.CurrentPrice,
		ProposedValue: proposed,
		Confidence:    Aggregate(BaselineConfidence, PricingBounds, deltas...),
		Rationale:     rationale,
		MetricName:    domain.MetricProjectedMargin,
		Metric:        round2(MarginPct(proposed, sig.BaseCost)),
	}
}
