// Package entity contains the core business objects of the marketplace,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	// ShipmentActive indicates the shipment is open and waiting for offers.
	ShipmentActive ShipmentStatus = "Active"
	// ShipmentOffering indicates the shipment is open and has at least one offer.
	ShipmentOffering ShipmentStatus = "Offering"
	// ShipmentClosed indicates an offer was accepted and the shipment is finished.
	ShipmentClosed ShipmentStatus = "Closed"
	// ShipmentCancelled indicates the importer withdrew the shipment.
	ShipmentCancelled ShipmentStatus = "Cancelled"
	// ShipmentExpired indicates the expiration date elapsed without acceptance.
	ShipmentExpired ShipmentStatus = "Expired"
)

// String returns the string representation of the ShipmentStatus.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid checks if the ShipmentStatus is a valid value.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentActive, ShipmentOffering, ShipmentClosed, ShipmentCancelled, ShipmentExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s ShipmentStatus) IsTerminal() bool {
	switch s {
	case ShipmentClosed, ShipmentCancelled, ShipmentExpired:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a transition from s to next is allowed.
// Transitions are one-directional except Active<->Offering, which is informational.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if !next.IsValid() || next == s {
		return false
	}

	return true
}

// ShippingType distinguishes the two supported freight modes.
type ShippingType string

const (
	// ShippingMaritime is ocean freight.
	ShippingMaritime ShippingType = "Maritime"
	// ShippingAir is air freight.
	ShippingAir ShippingType = "Air"
)

// String returns the string representation of the ShippingType.
func (t ShippingType) String() string {
	return string(t)
}

// IsValid checks if the ShippingType is a valid value.
func (t ShippingType) IsValid() bool {
	switch t {
	case ShippingMaritime, ShippingAir:
		return true
	default:
		return false
	}
}

// Shipment represents a cargo movement request opened by an importer for
// agents to quote against ("bid" in marketplace terms).
type Shipment struct {
	ID                 int64          `json:"id"`                  // Owning-system primary key.
	UUID               uuid.UUID      `json:"uuid"`                // External-facing identifier shared with clients.
	ProfileID          uuid.UUID      `json:"profile_id"`          // The importer who owns the shipment.
	Status             ShipmentStatus `json:"status"`              // Current lifecycle state.
	Origin             string         `json:"origin"`              // Origin port or city name.
	OriginCountry      string         `json:"origin_country"`      // Origin country.
	Destination        string         `json:"destination"`         // Destination port or city name.
	DestinationCountry string         `json:"destination_country"` // Destination country.
	ShippingType       ShippingType   `json:"shipping_type"`       // Maritime or Air.
	Value              float64        `json:"value"`               // Declared cargo value.
	Currency           string         `json:"currency"`            // ISO currency code of the declared value.
	AdditionalInfo     string         `json:"additional_info"`     // Free-text notes from the importer.
	MarketID           int64          `json:"market_id"`           // Marketplace region; immutable after creation.
	WinningOfferID     *int64         `json:"winning_offer_id"`    // Set once the shipment is closed.
	ExpirationDate     time.Time      `json:"expiration_date"`     // Deadline for agents to submit offers.
	CreatedAt          time.Time      `json:"created_at"`          // Timestamp of when this record was created.
	UpdatedAt          time.Time      `json:"updated_at"`          // Timestamp of the last modification.
}

// Route returns the human-readable origin -> destination pair used in
// notification messages.
func (s *Shipment) Route() string {
	return s.Origin + " - " + s.Destination
}

// IsOpen reports whether the shipment still accepts offers.
func (s *Shipment) IsOpen() bool {
	return s.Status == ShipmentActive || s.Status == ShipmentOffering
}
