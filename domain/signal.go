package domain

// InsightDomain tags which rule set produced a recommendation.
type InsightDomain string

const (
	InsightDomainPricing   InsightDomain = "pricing"
	InsightDomainInventory InsightDomain = "inventory"
)

// Signal is the read-only input bundle for one entity. It is either a
// PricingSignal or an InventorySignal; rule sets switch on the concrete type.
type Signal interface {
	SignalEntityID() string
	SignalDomain() InsightDomain
}

// PriceRange is the spread of competitor prices observed in a window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarginRange is a tenant's target margin band, in percent.
type MarginRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// PricingSignal describes a product at evaluation time. Optional facts are nil
// when absent, never zero.
type PricingSignal struct {
	EntityID         string      `json:"entity_id"`
	CurrentPrice     float64     `json:"current_price"`
	BaseCost         float64     `json:"base_cost"`
	FeeEstimate      float64     `json:"fee_estimate"`
	MarginPct        float64     `json:"margin_pct"`
	TrailingSales    int         `json:"trailing_sales"`
	CompetitorMedian *float64    `json:"competitor_median,omitempty"`
	CompetitorRange  *PriceRange `json:"competitor_range,omitempty"`
	TargetMargin     MarginRange `json:"target_margin"`
	MinPrice         *float64    `json:"min_price,omitempty"`
	MaxPrice         *float64    `json:"max_price,omitempty"`
}

func (s PricingSignal) SignalEntityID() string      { return s.EntityID }
func (s PricingSignal) SignalDomain() InsightDomain { return InsightDomainPricing }

// HasCompetitorData is true when both median and range were observed.
func (s PricingSignal) HasCompetitorData() bool {
	return s.CompetitorMedian != nil && s.CompetitorRange != nil
}

// BestOffer is the cheapest supplier quote valid at evaluation time.
type BestOffer struct {
	OfferID       string  `json:"offer_id"`
	SupplierName  string  `json:"supplier_name"`
	UnitCost      float64 `json:"unit_cost"`
	PackSize      int     `json:"pack_size"`
	BulkBreakQty  int     `json:"bulk_break_qty"`
	BulkBreakCost float64 `json:"bulk_break_cost"`
}

// InventorySignal describes a stocked item at evaluation time.
type InventorySignal struct {
	EntityID         string     `json:"entity_id"`
	QuantityOnHand   float64    `json:"quantity_on_hand"`
	ReorderPoint     float64    `json:"reorder_point"`
	LeadTimeDays     float64    `json:"lead_time_days"`
	DailyRunRate     float64    `json:"daily_run_rate"`
	BestOffer        *BestOffer `json:"best_offer,omitempty"`
	LastPaidUnitCost float64    `json:"last_paid_unit_cost"`
}

func (s InventorySignal) SignalEntityID() string      { return s.EntityID }
func (s InventorySignal) SignalDomain() InsightDomain { return InsightDomainInventory }
