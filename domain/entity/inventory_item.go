package entity

import (
	"time"
)

type InventoryItem struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	QuantityOnHand   float64   `json:"quantity_on_hand"`
	ReorderPoint     float64   `json:"reorder_point"`
	LeadTimeDays     float64   `json:"lead_time_days"`
	LastPaidUnitCost float64   `json:"last_paid_unit_cost"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsUntracked is true for an item nobody has stocked, ordered or set a reorder point for.
func (i *InventoryItem) IsUntracked() bool {
	return i.QuantityOnHand <= 0 && i.ReorderPoint <= 0 && i.LastPaidUnitCost <= 0
}

// SupplierOffer is a supplier's quote for an inventory item, valid inside [ValidFrom, ValidTo].
type SupplierOffer struct {
	ID            string     `json:"id"`
	ItemID        string     `json:"item_id"`
	SupplierName  string     `json:"supplier_name"`
	UnitCost      float64    `json:"unit_cost"`
	PackSize      int        `json:"pack_size"`
	BulkBreakQty  int        `json:"bulk_break_qty"`
	BulkBreakCost float64    `json:"bulk_break_cost"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
}

// IsValidAt reports whether the offer can be used at t. An open ValidTo never expires.
func (o SupplierOffer) IsValidAt(t time.Time) bool {
	if t.Before(o.ValidFrom) {
		return false
	}
	if o.ValidTo != nil && t.After(*o.ValidTo) {
		return false
	}
	return o.UnitCost > 0
}

// LowestUnitCost is the cheapest per-unit price the offer can yield.
func (o SupplierOffer) LowestUnitCost() float64 {
	if o.BulkBreakQty > 0 && o.BulkBreakCost > 0 && o.BulkBreakCost < o.UnitCost {
		return o.BulkBreakCost
	}
	return o.UnitCost
}
