package repository

import (
	"context"
	"errors"

	"logbid/internal/domain/entity"
)

// ErrOfferNotFound is returned when an offer is not found.
var ErrOfferNotFound = errors.New("offer not found")

// OfferRepository defines the interface for offer-related database operations.
type OfferRepository interface {
	// CreateOffer persists a new offer and fills in the generated id and UUID.
	CreateOffer(ctx context.Context, offer *entity.Offer) error

	// FindOfferByID retrieves an offer by its numeric id.
	FindOfferByID(ctx context.Context, id int64) (*entity.Offer, error)

	// ListOffersByShipment retrieves all offers submitted against a shipment,
	// most recent first.
	ListOffersByShipment(ctx context.Context, shipmentID int64) ([]*entity.Offer, error)

	// UpdateOfferStatus sets the status of a single offer.
	UpdateOfferStatus(ctx context.Context, offerID int64, status entity.OfferStatus) error

	// RejectSiblingOffers marks every pending offer of the shipment except the
	// winning one as rejected.
	RejectSiblingOffers(ctx context.Context, shipmentID, winningOfferID int64) error
}
