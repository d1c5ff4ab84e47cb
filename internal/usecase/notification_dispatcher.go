package usecase

import (
	"context"
	"time"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// FanOutFailure records one recipient whose notification write failed.
type FanOutFailure struct {
	Recipient uuid.UUID
	Err       error
}

// FanOutResult reports the outcome of a market-wide fan-out. Failures are
// isolated per recipient: one failed write never aborts sibling deliveries,
// and callers decide what to do with the partial result.
type FanOutResult struct {
	Succeeded []uuid.UUID
	Failed    []FanOutFailure
}

// NotificationDispatcher persists notification records for lifecycle events.
// It is a write-only fan-out, not a queue: each call performs its own
// persistence and returns synchronously. Calling the same operation twice
// produces two notifications; there is no idempotency key.
type NotificationDispatcher interface {
	// NotifyNewOffer tells the importer an agent quoted their shipment.
	NotifyNewOffer(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error

	// NotifyOfferAccepted tells the winning agent their offer was accepted.
	NotifyOfferAccepted(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error

	// NotifyOfferRejected tells a losing agent another offer won, citing their
	// best-priced losing offer and the price that won.
	NotifyOfferRejected(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, losingOffer *entity.Offer, winningPrice float64) error

	// NotifyShipmentExpiring warns the importer the offer deadline is near.
	NotifyShipmentExpiring(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, hoursUntilExpiration int) error

	// NotifyStatusChanged tells the importer about a status change.
	NotifyStatusChanged(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, oldStatus, newStatus entity.ShipmentStatus) error

	// NotifyDeadlineExtended confirms the extension to the importer.
	NotifyDeadlineExtended(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, newExpiration time.Time) error

	// NotifyAgentsDeadlineExtended fans the extension out to every agent in
	// the market.
	NotifyAgentsDeadlineExtended(ctx context.Context, marketID int64, shipment *entity.Shipment, newExpiration time.Time) (*FanOutResult, error)

	// NotifyAgentsNewShipment fans the new shipment out to every agent in the
	// market.
	NotifyAgentsNewShipment(ctx context.Context, marketID int64, shipment *entity.Shipment) (*FanOutResult, error)
}
