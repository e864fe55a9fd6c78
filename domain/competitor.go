package domain

import (
	"strings"
	"time"
)

// CompetitorObservation is one competitor price seen for a product.
type CompetitorObservation struct {
	ProductID  string    `json:"product_id"`
	SKU        string    `json:"sku"`
	Competitor string    `json:"competitor"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// NormalizeSKU is the matching key used when importing competitor feeds.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
