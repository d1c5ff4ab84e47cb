package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	deliverycontext "logbid/internal/delivery/context"
	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/quote"
	"logbid/internal/domain/repository"
	"logbid/internal/domain/service"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// priceTolerance absorbs float formatting drift between the client's total and
// the recomputed breakdown. Anything below a cent counts as equal.
const priceTolerance = 0.009

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager    repository.TransactionManager
	offerRepo    repository.OfferRepository
	shipmentRepo repository.ShipmentRepository
	profileRepo  repository.ProfileRepository
	dispatcher   usecase.NotificationDispatcher
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(
	txManager repository.TransactionManager,
	offerRepo repository.OfferRepository,
	shipmentRepo repository.ShipmentRepository,
	profileRepo repository.ProfileRepository,
	dispatcher usecase.NotificationDispatcher,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OfferUsecase {
	return &offerService{
		txManager:    txManager,
		offerRepo:    offerRepo,
		shipmentRepo: shipmentRepo,
		profileRepo:  profileRepo,
		dispatcher:   dispatcher,
		publisher:    publisher,
		logger:       logger,
	}
}

// SubmitOffer validates the price against the fee breakdown, persists the offer
// while the parent shipment is still open, and notifies the importer.
func (srv *offerService) SubmitOffer(ctx context.Context, actingUserID uuid.UUID, input usecase.SubmitOfferInput) (*entity.Offer, error) {
	srv.logger.Info("Submitting offer", "shipmentID", input.ShipmentID, "agentID", actingUserID)

	profile, err := srv.profileRepo.FindProfileByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "acting user has no profile")
		}

		return nil, errors.Wrap(err, "failed to find acting profile")
	}
	if profile.Role != entity.RoleAgent {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only agents can submit offers")
	}

	breakdown, err := quote.CalculateDetails(input.ShippingType, input.Details)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if math.Abs(input.Price-breakdown.Total) > priceTolerance {
		return nil, domainerrors.ErrOfferPriceMismatch.WithDetails(
			fmt.Sprintf("submitted %.2f, breakdown total %.2f", input.Price, breakdown.Total))
	}

	var (
		offer         *entity.Offer
		shipment      *entity.Shipment
		statusFlipped bool
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shipmentRepo := repoFactory.NewShipmentRepository()
		offerRepo := repoFactory.NewOfferRepository()

		found, err := shipmentRepo.FindShipmentByID(ctx, input.ShipmentID)
		if err != nil {
			if errors.Is(err, repository.ErrShipmentNotFound) {
				return errors.Wrap(domainerrors.ErrShipmentNotFound, "shipment not found")
			}

			return errors.Wrap(err, "failed to find shipment")
		}
		shipment = found

		if shipment.MarketID != profile.MarketID {
			return errors.Wrap(domainerrors.ErrForbidden, "shipment belongs to another market")
		}
		if !shipment.IsOpen() {
			return errors.Wrap(domainerrors.ErrShipmentNotOpen, "shipment no longer accepts offers")
		}
		if input.ShippingType != shipment.ShippingType {
			return domainerrors.ErrValidationFailed.WrapMessage("offer shipping type must match the shipment")
		}

		offer = &entity.Offer{
			ShipmentID:   input.ShipmentID,
			AgentID:      actingUserID,
			AgentCode:    profile.AgentCode,
			Price:        input.Price,
			Currency:     input.Currency,
			ShippingType: input.ShippingType,
			Status:       entity.OfferPending,
			Details:      input.Details,
		}
		if err := offerRepo.CreateOffer(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		// First offer moves the shipment from Active to Offering.
		if shipment.Status == entity.ShipmentActive {
			if err := shipmentRepo.UpdateShipmentStatus(ctx, shipment.ID, entity.ShipmentOffering); err != nil {
				return errors.Wrap(err, "failed to mark shipment as offering")
			}
			shipment.Status = entity.ShipmentOffering
			statusFlipped = true
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit offer")
	}

	// The offer is durable; degraded notifications must not fail the submission.
	srv.publishOfferEvent(ctx, offer, shipment.MarketID)
	if statusFlipped {
		srv.publishShipmentUpdate(ctx, shipment)
	}

	if err := srv.dispatcher.NotifyNewOffer(ctx, shipment.ProfileID, shipment, offer); err != nil {
		srv.logger.Warn("New offer notification failed",
			"shipmentID", shipment.ID, "offerID", offer.ID, "error", err)
	}

	return offer, nil
}

// ListOffersForShipment retrieves all offers submitted against a shipment.
func (srv *offerService) ListOffersForShipment(ctx context.Context, shipmentID int64) ([]*entity.Offer, error) {
	if _, err := srv.shipmentRepo.FindShipmentByID(ctx, shipmentID); err != nil {
		if errors.Is(err, repository.ErrShipmentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrShipmentNotFound, "shipment not found")
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	offers, err := srv.offerRepo.ListOffersByShipment(ctx, shipmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	return offers, nil
}

func (srv *offerService) publishOfferEvent(ctx context.Context, offer *entity.Offer, marketID int64) {
	record, err := json.Marshal(offer)
	if err != nil {
		srv.logger.Warn("Failed to encode offer for realtime push", "offerID", offer.ID, "error", err)

		return
	}

	event := &service.RealtimeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Stream:    service.StreamOffers,
		Action:    service.ActionInsert,
		MarketID:  marketID,
		Record:    record,
	}

	if err := srv.publisher.PublishRealtimeEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to push offer event to realtime feed", "offerID", offer.ID, "error", err)
	}
}

func (srv *offerService) publishShipmentUpdate(ctx context.Context, shipment *entity.Shipment) {
	record, err := json.Marshal(shipment)
	if err != nil {
		srv.logger.Warn("Failed to encode shipment for realtime push", "shipmentID", shipment.ID, "error", err)

		return
	}

	event := &service.RealtimeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Stream:    service.StreamShipments,
		Action:    service.ActionUpdate,
		MarketID:  shipment.MarketID,
		Record:    record,
	}

	if err := srv.publisher.PublishRealtimeEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to push shipment event to realtime feed", "shipmentID", shipment.ID, "error", err)
	}
}
