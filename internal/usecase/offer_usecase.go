package usecase

import (
	"context"
	"encoding/json"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitOfferInput carries the fields an agent supplies when quoting a
// shipment. Details holds the structured fee breakdown; the submitted price
// must equal the breakdown's computed total.
type SubmitOfferInput struct {
	ShipmentID   int64               `json:"shipment_id"`
	Price        float64             `json:"price"`
	Currency     string              `json:"currency"`
	ShippingType entity.ShippingType `json:"shipping_type"`
	Details      json.RawMessage     `json:"details"`
}

// OfferUsecase handles offer submission and retrieval.
type OfferUsecase interface {
	// SubmitOffer validates the price against the fee breakdown, persists the
	// offer while the parent shipment is still open, and notifies the importer.
	SubmitOffer(ctx context.Context, actingUserID uuid.UUID, input SubmitOfferInput) (*entity.Offer, error)

	// ListOffersForShipment retrieves all offers submitted against a shipment.
	ListOffersForShipment(ctx context.Context, shipmentID int64) ([]*entity.Offer, error)
}
