package entity

import (
	"time"
)

// Product is the tenant-owned catalog row the pricing engine reads and ApplyPrice mutates.
type Product struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	BaseCost         float64   `json:"base_cost"`
	TargetMarginLow  float64   `json:"target_margin_low"`
	TargetMarginHigh float64   `json:"target_margin_high"`
	MinPrice         *float64  `json:"min_price,omitempty"`
	MaxPrice         *float64  `json:"max_price,omitempty"`
	PriceVersion     int64     `json:"price_version"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BelongsTo reports whether the product is owned by tenantID.
func (p *Product) BelongsTo(tenantID string) bool {
	return p != nil && tenantID != "" && p.TenantID == tenantID
}
