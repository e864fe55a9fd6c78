package domain

import "time"

// Actor distinguishes who caused a price change.
type Actor string

const (
	// ActorEngine marks changes applied through this service.
	ActorEngine Actor = "engine"
	// ActorHuman marks manual price edits written to price_audit by the storefront admin, which share the audit trail.
	ActorHuman Actor = "human"
)

// AuditEntry records one price change. Entries are append-only.
type AuditEntry struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	ProductID     string    `json:"product_id"`
	PreviousPrice float64   `json:"previous_price"`
	NewPrice      float64   `json:"new_price"`
	Actor         Actor     `json:"actor"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
