// Package usecase defines the application-level interfaces orchestrating the
// bid lifecycle, offer submission and notification delivery.
package usecase

import (
	"context"
	"time"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateShipmentInput carries the fields an importer supplies when opening a
// shipment for quoting.
type CreateShipmentInput struct {
	Origin             string               `json:"origin"`
	OriginCountry      string               `json:"origin_country"`
	Destination        string               `json:"destination"`
	DestinationCountry string               `json:"destination_country"`
	ShippingType       entity.ShippingType  `json:"shipping_type"`
	Value              float64              `json:"value"`
	Currency           string               `json:"currency"`
	AdditionalInfo     string               `json:"additional_info"`
	MarketID           int64                `json:"market_id"`
	ExpirationDate     time.Time            `json:"expiration_date"`
}

// ListShipmentsInput carries the equality filters for market listings.
type ListShipmentsInput struct {
	MarketID     int64
	Status       *entity.ShipmentStatus
	ShippingType *entity.ShippingType
}

// BidUsecase orchestrates the shipment ("bid") lifecycle: opening shipments,
// listing them per market, and closing them when an importer accepts an offer.
// The acting user is always an explicit parameter; there is no ambient session.
type BidUsecase interface {
	// CreateShipment opens a new shipment and fans out new_shipment
	// notifications to every agent in the market.
	CreateShipment(ctx context.Context, actingUserID uuid.UUID, input CreateShipmentInput) (*entity.Shipment, error)

	// ListShipmentsByMarket lists shipments with deterministic ordering. When
	// the filter status is Offering and the acting user is an agent, results
	// are scoped to shipments that agent has quoted.
	ListShipmentsByMarket(ctx context.Context, actingUserID uuid.UUID, input ListShipmentsInput) ([]*entity.Shipment, error)

	// CloseBid transitions the shipment to Closed, marks the winning offer
	// accepted and the siblings rejected, then triggers the acceptance
	// notifications and emails. At most one offer ever wins, even under
	// concurrent calls.
	CloseBid(ctx context.Context, actingUserID uuid.UUID, shipmentID, winningOfferID int64) (*entity.Shipment, error)

	// ExtendDeadline moves the expiration date forward and notifies both the
	// importer and the market's agents.
	ExtendDeadline(ctx context.Context, actingUserID uuid.UUID, shipmentID int64, newExpiration time.Time) (*entity.Shipment, error)

	// UpdateStatus applies an informational status transition and notifies the
	// importer.
	UpdateStatus(ctx context.Context, actingUserID uuid.UUID, shipmentID int64, newStatus entity.ShipmentStatus) error

	// FlagExpiring is the entry point for the external expiry trigger; it
	// warns the importer that the deadline is near.
	FlagExpiring(ctx context.Context, shipmentID int64, hoursUntilExpiration int) error
}
