package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	deliverycontext "logbid/internal/delivery/context"
	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	"logbid/internal/domain/service"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// bidService implements the BidUsecase interface.
type bidService struct {
	txManager    repository.TransactionManager
	shipmentRepo repository.ShipmentRepository
	profileRepo  repository.ProfileRepository
	dispatcher   usecase.NotificationDispatcher
	publisher    service.EventPublisher
	mailer       service.AcceptanceMailer
	logger       *slog.Logger
}

// NewBidService is the constructor for bidService.
func NewBidService(
	txManager repository.TransactionManager,
	shipmentRepo repository.ShipmentRepository,
	profileRepo repository.ProfileRepository,
	dispatcher usecase.NotificationDispatcher,
	publisher service.EventPublisher,
	mailer service.AcceptanceMailer,
	logger *slog.Logger,
) usecase.BidUsecase {
	return &bidService{
		txManager:    txManager,
		shipmentRepo: shipmentRepo,
		profileRepo:  profileRepo,
		dispatcher:   dispatcher,
		publisher:    publisher,
		mailer:       mailer,
		logger:       logger,
	}
}

// CreateShipment opens a new shipment and fans out new_shipment notifications
// to every agent in the market.
func (srv *bidService) CreateShipment(ctx context.Context, actingUserID uuid.UUID, input usecase.CreateShipmentInput) (*entity.Shipment, error) {
	srv.logger.Info("Creating shipment", "userID", actingUserID, "marketID", input.MarketID)

	if !input.ShippingType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown shipping type")
	}
	if input.Origin == "" || input.Destination == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("origin and destination are required")
	}
	if !input.ExpirationDate.After(time.Now()) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("expiration date must be in the future")
	}

	profile, err := srv.profileRepo.FindProfileByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "acting user has no profile")
		}

		return nil, errors.Wrap(err, "failed to find acting profile")
	}
	if profile.Role != entity.RoleImporter {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only importers can open shipments")
	}
	if input.MarketID != profile.MarketID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "cannot open shipments in another market")
	}

	shipment := &entity.Shipment{
		ProfileID:          actingUserID,
		Status:             entity.ShipmentActive,
		Origin:             input.Origin,
		OriginCountry:      input.OriginCountry,
		Destination:        input.Destination,
		DestinationCountry: input.DestinationCountry,
		ShippingType:       input.ShippingType,
		Value:              input.Value,
		Currency:           input.Currency,
		AdditionalInfo:     input.AdditionalInfo,
		MarketID:           input.MarketID,
		ExpirationDate:     input.ExpirationDate,
	}

	if err := srv.shipmentRepo.CreateShipment(ctx, shipment); err != nil {
		return nil, errors.Wrap(err, "failed to create shipment")
	}

	srv.publishShipmentEvent(ctx, service.ActionInsert, shipment)

	// The shipment is durable at this point; a degraded fan-out must not fail
	// the creation.
	result, err := srv.dispatcher.NotifyAgentsNewShipment(ctx, shipment.MarketID, shipment)
	if err != nil {
		srv.logger.Warn("New shipment fan-out failed", "shipmentID", shipment.ID, "error", err)
	} else if len(result.Failed) > 0 {
		srv.logger.Warn("New shipment fan-out partially failed",
			"shipmentID", shipment.ID, "succeeded", len(result.Succeeded), "failed", len(result.Failed))
	}

	return shipment, nil
}

// ListShipmentsByMarket lists shipments with deterministic ordering. When the
// filter status is Offering and the acting user is an agent, results are scoped
// to shipments that agent has quoted.
func (srv *bidService) ListShipmentsByMarket(ctx context.Context, actingUserID uuid.UUID, input usecase.ListShipmentsInput) ([]*entity.Shipment, error) {
	query := repository.ShipmentQuery{
		MarketID:     input.MarketID,
		Status:       input.Status,
		ShippingType: input.ShippingType,
	}

	if input.Status != nil && *input.Status == entity.ShipmentOffering {
		profile, err := srv.profileRepo.FindProfileByID(ctx, actingUserID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "acting user has no profile")
			}

			return nil, errors.Wrap(err, "failed to find acting profile")
		}
		if profile.Role == entity.RoleAgent {
			query.AgentID = &profile.ID
		}
	}

	shipments, err := srv.shipmentRepo.ListShipmentsByMarket(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}

	return shipments, nil
}

// CloseBid transitions the shipment to Closed, marks the winning offer accepted
// and the siblings rejected, then triggers the acceptance notifications and
// emails. The conditional close guarantees at most one winner even under
// concurrent calls; the loser went through a transaction that touched no row.
func (srv *bidService) CloseBid(ctx context.Context, actingUserID uuid.UUID, shipmentID, winningOfferID int64) (*entity.Shipment, error) {
	srv.logger.Info("Closing bid", "shipmentID", shipmentID, "winningOfferID", winningOfferID, "userID", actingUserID)

	var (
		shipment     *entity.Shipment
		winningOffer *entity.Offer
		siblings     []*entity.Offer
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shipmentRepo := repoFactory.NewShipmentRepository()
		offerRepo := repoFactory.NewOfferRepository()

		found, err := shipmentRepo.FindShipmentByID(ctx, shipmentID)
		if err != nil {
			if errors.Is(err, repository.ErrShipmentNotFound) {
				return errors.Wrap(domainerrors.ErrShipmentNotFound, "shipment not found")
			}

			return errors.Wrap(err, "failed to find shipment")
		}
		shipment = found

		if shipment.ProfileID != actingUserID {
			return errors.Wrap(domainerrors.ErrShipmentOwnershipViolation, "shipment belongs to another importer")
		}

		offer, err := offerRepo.FindOfferByID(ctx, winningOfferID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrOfferNotFound, "winning offer not found")
			}

			return errors.Wrap(err, "failed to find winning offer")
		}
		if offer.ShipmentID != shipmentID {
			return errors.Wrap(domainerrors.ErrOfferShipmentMismatch, "offer quotes a different shipment")
		}
		if !offer.IsPending() {
			return errors.Wrap(domainerrors.ErrOfferNotPending, "offer was already decided")
		}
		winningOffer = offer

		if err := shipmentRepo.CloseShipment(ctx, shipmentID, winningOfferID); err != nil {
			if errors.Is(err, repository.ErrShipmentAlreadyClosed) {
				return errors.Wrap(domainerrors.ErrShipmentClosed, "shipment was closed concurrently")
			}

			return errors.Wrap(err, "failed to close shipment")
		}

		// Snapshot the siblings after the close won, while they are still
		// pending. An offer committed after this read is still swept by
		// RejectSiblingOffers but gets no rejection notification.
		all, err := offerRepo.ListOffersByShipment(ctx, shipmentID)
		if err != nil {
			return errors.Wrap(err, "failed to list offers")
		}
		siblings = all

		if err := offerRepo.UpdateOfferStatus(ctx, winningOfferID, entity.OfferAccepted); err != nil {
			return errors.Wrap(err, "failed to accept winning offer")
		}

		if err := offerRepo.RejectSiblingOffers(ctx, shipmentID, winningOfferID); err != nil {
			return errors.Wrap(err, "failed to reject sibling offers")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to close bid")
	}

	shipment.Status = entity.ShipmentClosed
	shipment.WinningOfferID = &winningOfferID

	// Everything past the commit is best effort. The close already happened;
	// degraded notifications or email must not surface as a failure.
	srv.publishShipmentEvent(ctx, service.ActionUpdate, shipment)
	srv.notifyCloseOutcome(ctx, shipment, winningOffer, siblings)

	if err := srv.mailer.SendAcceptanceEmails(ctx, shipmentID, winningOfferID); err != nil {
		srv.logger.Warn("Acceptance email trigger failed",
			"shipmentID", shipmentID, "offerID", winningOfferID, "error", err)
	}

	return shipment, nil
}

// notifyCloseOutcome tells the winner their offer was accepted and each losing
// agent that another offer won. Agents who quoted several times get a single
// rejection citing their lowest-priced losing offer; the winning agent gets no
// rejection even if their other offers lost.
func (srv *bidService) notifyCloseOutcome(ctx context.Context, shipment *entity.Shipment, winningOffer *entity.Offer, siblings []*entity.Offer) {
	if err := srv.dispatcher.NotifyOfferAccepted(ctx, winningOffer.AgentID, shipment, winningOffer); err != nil {
		srv.logger.Warn("Acceptance notification failed",
			"shipmentID", shipment.ID, "agentID", winningOffer.AgentID, "error", err)
	}

	bestLosing := make(map[uuid.UUID]*entity.Offer)
	for _, offer := range siblings {
		if offer.ID == winningOffer.ID || offer.AgentID == winningOffer.AgentID {
			continue
		}
		if !offer.IsPending() {
			continue
		}
		if best, ok := bestLosing[offer.AgentID]; !ok || offer.Price < best.Price {
			bestLosing[offer.AgentID] = offer
		}
	}

	for agentID, offer := range bestLosing {
		if err := srv.dispatcher.NotifyOfferRejected(ctx, agentID, shipment, offer, winningOffer.Price); err != nil {
			srv.logger.Warn("Rejection notification failed",
				"shipmentID", shipment.ID, "agentID", agentID, "error", err)
		}
	}
}

// ExtendDeadline moves the expiration date forward and notifies both the
// importer and the market's agents.
func (srv *bidService) ExtendDeadline(ctx context.Context, actingUserID uuid.UUID, shipmentID int64, newExpiration time.Time) (*entity.Shipment, error) {
	srv.logger.Info("Extending deadline", "shipmentID", shipmentID, "newExpiration", newExpiration)

	shipment, err := srv.findOwnedShipment(ctx, actingUserID, shipmentID)
	if err != nil {
		return nil, err
	}

	if !shipment.IsOpen() {
		return nil, errors.Wrap(domainerrors.ErrShipmentNotOpen, "cannot extend a shipment that no longer accepts offers")
	}
	if !newExpiration.After(shipment.ExpirationDate) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("new expiration must be after the current one")
	}

	if err := srv.shipmentRepo.UpdateExpirationDate(ctx, shipmentID, newExpiration); err != nil {
		return nil, errors.Wrap(err, "failed to update expiration date")
	}
	shipment.ExpirationDate = newExpiration

	srv.publishShipmentEvent(ctx, service.ActionUpdate, shipment)

	if err := srv.dispatcher.NotifyDeadlineExtended(ctx, shipment.ProfileID, shipment, newExpiration); err != nil {
		srv.logger.Warn("Deadline extension notification failed", "shipmentID", shipmentID, "error", err)
	}

	result, err := srv.dispatcher.NotifyAgentsDeadlineExtended(ctx, shipment.MarketID, shipment, newExpiration)
	if err != nil {
		srv.logger.Warn("Deadline extension fan-out failed", "shipmentID", shipmentID, "error", err)
	} else if len(result.Failed) > 0 {
		srv.logger.Warn("Deadline extension fan-out partially failed",
			"shipmentID", shipmentID, "succeeded", len(result.Succeeded), "failed", len(result.Failed))
	}

	return shipment, nil
}

// UpdateStatus applies an informational status transition and notifies the importer.
func (srv *bidService) UpdateStatus(ctx context.Context, actingUserID uuid.UUID, shipmentID int64, newStatus entity.ShipmentStatus) error {
	shipment, err := srv.findOwnedShipment(ctx, actingUserID, shipmentID)
	if err != nil {
		return err
	}

	if !shipment.Status.CanTransitionTo(newStatus) {
		return domainerrors.ErrInvalidStatusTransition.WrapMessage(
			"cannot move from " + shipment.Status.String() + " to " + newStatus.String())
	}

	if err := srv.shipmentRepo.UpdateShipmentStatus(ctx, shipmentID, newStatus); err != nil {
		return errors.Wrap(err, "failed to update shipment status")
	}

	oldStatus := shipment.Status
	shipment.Status = newStatus

	srv.publishShipmentEvent(ctx, service.ActionUpdate, shipment)

	if err := srv.dispatcher.NotifyStatusChanged(ctx, shipment.ProfileID, shipment, oldStatus, newStatus); err != nil {
		srv.logger.Warn("Status change notification failed", "shipmentID", shipmentID, "error", err)
	}

	return nil
}

// FlagExpiring is the entry point for the external expiry trigger; it warns the
// importer that the deadline is near. Shipments already in a terminal state are
// skipped silently, the trigger fires on a schedule and races with closes.
func (srv *bidService) FlagExpiring(ctx context.Context, shipmentID int64, hoursUntilExpiration int) error {
	shipment, err := srv.shipmentRepo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrShipmentNotFound) {
			return errors.Wrap(domainerrors.ErrShipmentNotFound, "shipment not found")
		}

		return errors.Wrap(err, "failed to find shipment")
	}

	if !shipment.IsOpen() {
		return nil
	}

	if err := srv.dispatcher.NotifyShipmentExpiring(ctx, shipment.ProfileID, shipment, hoursUntilExpiration); err != nil {
		return errors.Wrap(err, "failed to deliver expiry warning")
	}

	return nil
}

func (srv *bidService) findOwnedShipment(ctx context.Context, actingUserID uuid.UUID, shipmentID int64) (*entity.Shipment, error) {
	shipment, err := srv.shipmentRepo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrShipmentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrShipmentNotFound, "shipment not found")
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	if shipment.ProfileID != actingUserID {
		return nil, errors.Wrap(domainerrors.ErrShipmentOwnershipViolation, "shipment belongs to another importer")
	}

	return shipment, nil
}

// publishShipmentEvent pushes a shipment row change to the market's realtime
// feed. Failures only log; the feed is a cache on top of durable state.
func (srv *bidService) publishShipmentEvent(ctx context.Context, action string, shipment *entity.Shipment) {
	record, err := json.Marshal(shipment)
	if err != nil {
		srv.logger.Warn("Failed to encode shipment for realtime push", "shipmentID", shipment.ID, "error", err)

		return
	}

	event := &service.RealtimeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Stream:    service.StreamShipments,
		Action:    action,
		MarketID:  shipment.MarketID,
		Record:    record,
	}

	if err := srv.publisher.PublishRealtimeEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to push shipment event to realtime feed", "shipmentID", shipment.ID, "error", err)
	}
}
