package valueobject

import (
	"github.com/shopspring/decimal"
)

// RoundCents rounds a monetary amount half-away-from-zero to 2 decimal places.
func RoundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// LineTotal multiplies quantity by unit cost without float drift.
func LineTotal(quantity, unitCost float64) decimal.Decimal {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitCost))
}

// SumCents adds line totals and rounds the result to cents.
func SumCents(totals ...decimal.Decimal) float64 {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Round(2).InexactFloat64()
}
