package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OfferStatus represents the lifecycle state of an offer.
type OfferStatus string

const (
	// OfferPending indicates the offer is awaiting the importer's decision.
	OfferPending OfferStatus = "pending"
	// OfferAccepted indicates the importer selected this offer.
	OfferAccepted OfferStatus = "accepted"
	// OfferRejected indicates another offer won the shipment.
	OfferRejected OfferStatus = "rejected"
)

// String returns the string representation of the OfferStatus.
func (s OfferStatus) String() string {
	return string(s)
}

// IsValid checks if the OfferStatus is a valid value.
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferPending, OfferAccepted, OfferRejected:
		return true
	default:
		return false
	}
}

// Offer represents an agent's priced quote against a shipment. The price
// carries the grand total of the fee breakdown stored in Details.
type Offer struct {
	ID           int64           `json:"id"`            // Owning-system primary key.
	UUID         uuid.UUID       `json:"uuid"`          // External-facing identifier shared with clients.
	ShipmentID   int64           `json:"shipment_id"`   // The shipment this offer quotes against.
	AgentID      uuid.UUID       `json:"agent_id"`      // Profile of the submitting agent.
	AgentCode    string          `json:"agent_code"`    // Public pseudonym shown to importers.
	Price        float64         `json:"price"`         // Grand total; must equal the breakdown total.
	Currency     string          `json:"currency"`      // ISO currency code.
	ShippingType ShippingType    `json:"shipping_type"` // Must match the parent shipment.
	Status       OfferStatus     `json:"status"`        // pending, accepted or rejected.
	Details      json.RawMessage `json:"details"`       // Fee breakdown, shape depends on shipping type.
	InsertedAt   time.Time       `json:"inserted_at"`   // Timestamp of submission.
	UpdatedAt    time.Time       `json:"updated_at"`    // Timestamp of the last modification.
}

// IsPending reports whether the offer can still be accepted or rejected.
func (o *Offer) IsPending() bool {
	return o.Status == OfferPending
}
