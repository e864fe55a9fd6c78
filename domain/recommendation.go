package domain

// Metric names carried on a Recommendation.
const (
	MetricProjectedMargin = "projected_margin_pct"
	MetricStockoutRisk    = "stockout_risk_pct"
)

// Recommendation is the engine's output for one entity. It is built fresh per
// evaluation and only ever persisted indirectly, through ApplyPrice or
// CreatePurchaseOrder.
type Recommendation struct {
	EntityID      string            `json:"entity_id"`
	Domain        InsightDomain     `json:"domain"`
	CurrentValue  float64           `json:"current_value"`
	ProposedValue float64           `json:"proposed_value"`
	Confidence    int               `json:"confidence"`
	Rationale     []string          `json:"rationale"`
	MetricName    string            `json:"metric_name"`
	Metric        float64           `json:"metric"`
	Pricing       *PricingActions   `json:"pricing_actions,omitempty"`
	Inventory     *InventoryActions `json:"inventory_actions,omitempty"`
}

// PricingActions are advisory flags derived from a pricing recommendation.
type PricingActions struct {
	ApplyPrice    bool   `json:"apply_price"`
	FloorWarning  bool   `json:"floor_warning"`
	InventoryNote string `json:"inventory_note,omitempty"`
}

// InventoryActions are advisory flags and numbers derived from an inventory recommendation.
type InventoryActions struct {
	CreatePO          bool    `json:"create_po"`
	OrderQuantity     float64 `json:"order_quantity"`
	EstimatedUnitCost float64 `json:"estimated_unit_cost"`
	EstimatedCost     float64 `json:"estimated_cost"`
}
