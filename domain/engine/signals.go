package engine

import (
	"math"
	"sort"

	"github.com/vendorops/insights/domain"
)

// FeeEstimate is the platform plus payment processing cost of selling at price.
func FeeEstimate(price float64) float64 {
	return price*PlatformFeeRate + (price*PaymentFeeRate + FixedPaymentFee)
}

// MarginPct returns the net margin in percent at price. An unknown cost basis
// reports 0 so downstream arithmetic stays total.
func MarginPct(price, baseCost float64) float64 {
	if baseCost <= 0 || price <= 0 {
		return 0
	}
	return (price - baseCost - FeeEstimate(price)) / price * 100
}

// CompetitorStats returns the median and range of prices, or nils when there
// are no observations.
func CompetitorStats(prices []float64) (*float64, *domain.PriceRange) {
	if len(prices) == 0 {
		return nil, nil
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return &median, &domain.PriceRange{Min: sorted[0], Max: sorted[n-1]}
}

// DailyRunRate averages consumption over the window. Without any consumption
// history it falls back to a conservative floor derived from stock on hand.
func DailyRunRate(consumedUnits float64, windowDays int, quantityOnHand float64) float64 {
	if consumedUnits > 0 && windowDays > 0 {
		return math.Max(MinDailyRunRate, consumedUnits/float64(windowDays))
	}
	return math.Max(MinDailyRunRate, quantityOnHand/RunRateFallbackDays)
}

// StockoutRisk estimates, in percent, how likely the item runs out before a
// reorder placed now arrives.
func StockoutRisk(quantityOnHand, leadTimeDays, dailyRunRate float64) float64 {
	demand := leadTimeDays * dailyRunRate
	if leadTimeDays <= 0 || dailyRunRate <= 0 {
		return 0
	}
	return clampFloat((1-quantityOnHand/demand)*100, 0, 100)
}

// SuggestedReorderQuantity sizes a reorder to cover lead-time demand plus safety stock.
// The result may be fractional; GateInventory turns it into orderable units.
func SuggestedReorderQuantity(leadTimeDays, dailyRunRate, quantityOnHand float64) float64 {
	return math.Max(0, leadTimeDays*dailyRunRate*SafetyStockMultiplier-quantityOnHand)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
