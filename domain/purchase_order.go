package domain

import "time"

// PurchaseOrderStatus is owned by procurement after creation; the engine only ever writes draft.
type PurchaseOrderStatus string

const (
	// PurchaseOrderStatusDraft is the only status the engine writes.
	PurchaseOrderStatusDraft PurchaseOrderStatus = "draft"
	// PurchaseOrderStatusSubmitted is set by the procurement workflow when a draft is sent to the supplier.
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = "submitted"
	// PurchaseOrderStatusReceived is set by the procurement workflow once the goods arrive.
	PurchaseOrderStatusReceived PurchaseOrderStatus = "received"
)

type PurchaseOrderLine struct {
	ID               string  `json:"id"`
	ItemID           string  `json:"item_id"`
	Quantity         float64 `json:"quantity"`
	UnitCostEstimate float64 `json:"unit_cost_estimate"`
}

// Valid reports whether the line can be ordered.
func (l PurchaseOrderLine) Valid() bool {
	return l.ItemID != "" && l.Quantity > 0 && l.UnitCostEstimate > 0
}

type PurchaseOrderDraft struct {
	ID                 string              `json:"id"`
	TenantID           string              `json:"tenant_id"`
	Status             PurchaseOrderStatus `json:"status"`
	Lines              []PurchaseOrderLine `json:"lines"`
	TotalEstimatedCost float64             `json:"total_estimated_cost"`
	CreatedAt          time.Time           `json:"created_at"`
}
