package inbound

import (
	"context"
	"time"

	"github.com/vendorops/insights/domain"
)

// Apply Price
type ApplyPriceRequest struct {
	ProductID string  `json:"product_id"`
	NewPrice  float64 `json:"new_price"`
	Reason    string  `json:"reason,omitempty" validate:"max=500"`
}

type ApplyPriceResponse struct {
	ProductID string  `json:"product_id"`
	Previous  float64 `json:"previous"`
	New       float64 `json:"new"`
	AuditID   string  `json:"audit_id"`
}

// Create Purchase Order
type PurchaseOrderLineRequest struct {
	ItemID           string  `json:"item_id"`
	Quantity         float64 `json:"quantity"`
	UnitCostEstimate float64 `json:"unit_cost_estimate"`
}

type CreatePurchaseOrderRequest struct {
	Lines []PurchaseOrderLineRequest `json:"lines" validate:"max=500"`
}

type CreatePurchaseOrderResponse struct {
	OrderID   string  `json:"order_id"`
	TotalCost float64 `json:"total_cost"`
	LineCount int     `json:"line_count"`
	Status    string  `json:"status"`
}

// Import Competitor Prices
type CompetitorObservationRequest struct {
	SKU        string    `json:"sku" validate:"required"`
	Competitor string    `json:"competitor" validate:"required"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

type ImportCompetitorPricesRequest struct {
	Observations []CompetitorObservationRequest `json:"observations" validate:"required,min=1,max=5000,dive"`
}

type ImportCompetitorPricesResponse struct {
	Matched       int      `json:"matched"`
	Unmatched     int      `json:"unmatched"`
	Written       int      `json:"written"`
	UnmatchedSKUs []string `json:"unmatched_skus"`
}

// Listing
type ListInsightsRequest struct {
	WindowDays int `json:"window_days" default:"30"`
}

type ListPriceHistoryRequest struct {
	Limit int `json:"limit" default:"50" validate:"gte=0"`
}

// InsightUseCase is the engine's boundary. The tenant is always passed
// explicitly; an empty tenant fails with domain.ErrUnauthorized.
type InsightUseCase interface {
	ListPricingInsights(ctx context.Context, tenantID string, windowDays int) ([]domain.Recommendation, error)
	ListInventoryInsights(ctx context.Context, tenantID string, windowDays int) ([]domain.Recommendation, error)
	ApplyPrice(ctx context.Context, tenantID string, req ApplyPriceRequest) (*ApplyPriceResponse, error)
	CreatePurchaseOrder(ctx context.Context, tenantID string, req CreatePurchaseOrderRequest) (*CreatePurchaseOrderResponse, error)
	ImportCompetitorPrices(ctx context.Context, tenantID string, req ImportCompetitorPricesRequest) (*ImportCompetitorPricesResponse, error)
	ListPriceHistory(ctx context.Context, tenantID, productID string, limit int) ([]domain.AuditEntry, error)
}
