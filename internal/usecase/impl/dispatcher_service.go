// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	deliverycontext "logbid/internal/delivery/context"
	"logbid/internal/domain/entity"
	"logbid/internal/domain/repository"
	"logbid/internal/domain/service"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Messages keep the {{route}} token literal; clients substitute it when
// rendering, so the stored text stays language-neutral.
const routeToken = "{{route}}"

type notificationDispatcher struct {
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	eventPublisher   service.EventPublisher
	logger           *slog.Logger
}

// NewNotificationDispatcher is the constructor for notificationDispatcher.
func NewNotificationDispatcher(
	notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	eventPublisher service.EventPublisher,
	logger *slog.Logger,
) usecase.NotificationDispatcher {
	return &notificationDispatcher{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

// deliver persists one notification record and pushes it to the recipient's
// realtime feed. Persistence failures propagate; a failed realtime push only
// logs, the record is already durable and shows up on the next feed fetch.
func (srv *notificationDispatcher) deliver(ctx context.Context, notification *entity.Notification) error {
	if err := srv.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return errors.Wrap(err, "failed to create notification")
	}

	record, err := json.Marshal(notification)
	if err != nil {
		srv.logger.Warn("Failed to encode notification for realtime push",
			"notificationID", notification.ID, "error", err)

		return nil
	}

	event := &service.RealtimeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Stream:    service.StreamNotifications,
		Action:    service.ActionInsert,
		UserID:    notification.UserID.String(),
		Record:    record,
	}
	if notification.MarketID != nil {
		event.MarketID = *notification.MarketID
	}

	if err := srv.eventPublisher.PublishRealtimeEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to push notification to realtime feed",
			"notificationID", notification.ID, "userID", notification.UserID, "error", err)
	}

	return nil
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// Payload structs contain only plain fields; this cannot fail.
		panic(err)
	}

	return data
}

// NotifyNewOffer tells the importer an agent quoted their shipment.
func (srv *notificationDispatcher) NotifyNewOffer(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error {
	notification := &entity.Notification{
		UserID:  importerID,
		Type:    entity.NotificationNewOffer,
		Title:   "New offer received",
		Message: fmt.Sprintf("Agent %s submitted an offer of %.2f %s for your shipment %s", offer.AgentCode, offer.Price, offer.Currency, routeToken),
		Data: mustMarshal(entity.NewOfferData{
			ShipmentUUID: shipment.UUID,
			OfferUUID:    offer.UUID,
			AgentCode:    offer.AgentCode,
			Price:        offer.Price,
			Currency:     offer.Currency,
			Route:        shipment.Route(),
		}),
		ShipmentID: &shipment.ID,
		OfferID:    &offer.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyOfferAccepted tells the winning agent their offer was accepted.
func (srv *notificationDispatcher) NotifyOfferAccepted(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error {
	notification := &entity.Notification{
		UserID:  agentID,
		Type:    entity.NotificationOfferAccepted,
		Title:   "Offer accepted",
		Message: fmt.Sprintf("Your offer of %.2f %s for shipment %s was accepted", offer.Price, offer.Currency, routeToken),
		Data: mustMarshal(entity.OfferAcceptedData{
			ShipmentUUID: shipment.UUID,
			OfferUUID:    offer.UUID,
			Price:        offer.Price,
			Currency:     offer.Currency,
			Route:        shipment.Route(),
		}),
		ShipmentID: &shipment.ID,
		OfferID:    &offer.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyOfferRejected tells a losing agent another offer won. The cited offer
// is the agent's best-priced losing offer on the shipment; the winning price
// is included so the agent can see what they lost to.
func (srv *notificationDispatcher) NotifyOfferRejected(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, losingOffer *entity.Offer, winningPrice float64) error {
	notification := &entity.Notification{
		UserID:  agentID,
		Type:    entity.NotificationOfferRejected,
		Title:   "Offer not selected",
		Message: fmt.Sprintf("Your offer of %.2f %s for shipment %s was not selected; the winning offer was %.2f %s", losingOffer.Price, losingOffer.Currency, routeToken, winningPrice, losingOffer.Currency),
		Data: mustMarshal(entity.OfferRejectedData{
			ShipmentUUID: shipment.UUID,
			OfferUUID:    losingOffer.UUID,
			Price:        losingOffer.Price,
			WinningPrice: winningPrice,
			Currency:     losingOffer.Currency,
			Route:        shipment.Route(),
		}),
		ShipmentID: &shipment.ID,
		OfferID:    &losingOffer.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyShipmentExpiring warns the importer the offer deadline is near.
func (srv *notificationDispatcher) NotifyShipmentExpiring(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, hoursUntilExpiration int) error {
	notification := &entity.Notification{
		UserID:  importerID,
		Type:    entity.NotificationShipmentExpiring,
		Title:   "Shipment expiring soon",
		Message: fmt.Sprintf("Your shipment %s stops accepting offers in %d hours", routeToken, hoursUntilExpiration),
		Data: mustMarshal(entity.ShipmentExpiringData{
			ShipmentUUID:         shipment.UUID,
			Route:                shipment.Route(),
			HoursUntilExpiration: hoursUntilExpiration,
			ExpirationDate:       shipment.ExpirationDate,
		}),
		ShipmentID: &shipment.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyStatusChanged tells the importer about a status change.
func (srv *notificationDispatcher) NotifyStatusChanged(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, oldStatus, newStatus entity.ShipmentStatus) error {
	notification := &entity.Notification{
		UserID:  importerID,
		Type:    entity.NotificationShipmentStatusChanged,
		Title:   "Shipment status changed",
		Message: fmt.Sprintf("Your shipment %s moved from %s to %s", routeToken, oldStatus, newStatus),
		Data: mustMarshal(entity.StatusChangedData{
			ShipmentUUID: shipment.UUID,
			Route:        shipment.Route(),
			OldStatus:    oldStatus,
			NewStatus:    newStatus,
		}),
		ShipmentID: &shipment.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyDeadlineExtended confirms the extension to the importer.
func (srv *notificationDispatcher) NotifyDeadlineExtended(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, newExpiration time.Time) error {
	notification := &entity.Notification{
		UserID:  importerID,
		Type:    entity.NotificationDeadlineExtended,
		Title:   "Deadline extended",
		Message: fmt.Sprintf("The offer deadline for your shipment %s was extended to %s", routeToken, newExpiration.Format("2006-01-02 15:04")),
		Data: mustMarshal(entity.DeadlineExtendedData{
			ShipmentUUID:      shipment.UUID,
			Route:             shipment.Route(),
			NewExpirationDate: newExpiration,
		}),
		ShipmentID: &shipment.ID,
		MarketID:   &shipment.MarketID,
	}

	return srv.deliver(ctx, notification)
}

// NotifyAgentsDeadlineExtended fans the extension out to every agent in the market.
func (srv *notificationDispatcher) NotifyAgentsDeadlineExtended(ctx context.Context, marketID int64, shipment *entity.Shipment, newExpiration time.Time) (*usecase.FanOutResult, error) {
	return srv.fanOut(ctx, marketID, func() *entity.Notification {
		return &entity.Notification{
			Type:    entity.NotificationDeadlineExtendedForAgents,
			Title:   "Deadline extended",
			Message: fmt.Sprintf("The offer deadline for shipment %s was extended to %s", routeToken, newExpiration.Format("2006-01-02 15:04")),
			Data: mustMarshal(entity.DeadlineExtendedData{
				ShipmentUUID:      shipment.UUID,
				Route:             shipment.Route(),
				NewExpirationDate: newExpiration,
			}),
			ShipmentID: &shipment.ID,
			MarketID:   &shipment.MarketID,
		}
	})
}

// NotifyAgentsNewShipment fans the new shipment out to every agent in the market.
func (srv *notificationDispatcher) NotifyAgentsNewShipment(ctx context.Context, marketID int64, shipment *entity.Shipment) (*usecase.FanOutResult, error) {
	return srv.fanOut(ctx, marketID, func() *entity.Notification {
		return &entity.Notification{
			Type:    entity.NotificationNewShipment,
			Title:   "New shipment available",
			Message: fmt.Sprintf("A new %s shipment %s is open for offers until %s", shipment.ShippingType, routeToken, shipment.ExpirationDate.Format("2006-01-02 15:04")),
			Data: mustMarshal(entity.NewShipmentData{
				ShipmentUUID:   shipment.UUID,
				Route:          shipment.Route(),
				ShippingType:   shipment.ShippingType,
				Value:          shipment.Value,
				Currency:       shipment.Currency,
				ExpirationDate: shipment.ExpirationDate,
			}),
			ShipmentID: &shipment.ID,
			MarketID:   &shipment.MarketID,
		}
	})
}

// fanOut resolves the market's agents and delivers one fresh record per agent
// concurrently. Per-recipient failures are collected, never propagated; the
// only hard error is failing to resolve the recipient list.
func (srv *notificationDispatcher) fanOut(ctx context.Context, marketID int64, build func() *entity.Notification) (*usecase.FanOutResult, error) {
	agents, err := srv.profileRepo.FindAgentsByMarket(ctx, marketID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve market agents")
	}

	result := &usecase.FanOutResult{}
	if len(agents) == 0 {
		return result, nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, agent := range agents {
		wg.Add(1)

		go func(recipient *entity.Profile) {
			defer wg.Done()

			notification := build()
			notification.UserID = recipient.ID

			err := srv.deliver(ctx, notification)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				srv.logger.Warn("Fan-out delivery failed",
					"recipient", recipient.ID, "marketID", marketID, "error", err)
				result.Failed = append(result.Failed, usecase.FanOutFailure{Recipient: recipient.ID, Err: err})

				return
			}
			result.Succeeded = append(result.Succeeded, recipient.ID)
		}(agent)
	}

	wg.Wait()

	return result, nil
}
