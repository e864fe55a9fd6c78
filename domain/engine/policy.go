// Package engine turns read-only signals into bounded, explainable recommendations.
// Everything in this package is pure: no I/O, no clocks, no shared state.
package engine

const (
	PlatformFeeRate = 0.03
	PaymentFeeRate  = 0.029
	FixedPaymentFee = 0.30

	BaselineConfidence = 60

	PricingConfidenceFloor   = 30
	PricingConfidenceCeiling = 95

	// MinAdmitConfidence is shared by both domains; inventory can also be
	// admitted on urgency alone, see Admit.
	MinAdmitConfidence      = 50
	MinAdmitStockoutRisk    = 30.0
	AutoApplyPriceChange    = 0.05
	FloorWarningMultiplier  = 1.10
	CreatePOConfidence      = 60
	SafetyStockMultiplier   = 1.5
	MinDailyRunRate         = 0.1
	RunRateFallbackDays     = 30.0
	HighStockoutRisk        = 70.0
	ElevatedStockoutRisk    = 50.0
	SignificantSavingsRatio = 0.90
	HighVolumeSales         = 50
)
