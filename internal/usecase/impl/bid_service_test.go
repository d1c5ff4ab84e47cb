package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	mockRepo "logbid/internal/mocks/repository"
	mockService "logbid/internal/mocks/service"
	mockUsecase "logbid/internal/mocks/usecase"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bidServiceFixture struct {
	svc          usecase.BidUsecase
	txManager    *mockRepo.MockTransactionManager
	shipmentRepo *mockRepo.MockShipmentRepository
	offerRepo    *mockRepo.MockOfferRepository
	profileRepo  *mockRepo.MockProfileRepository
	dispatcher   *mockUsecase.MockNotificationDispatcher
	publisher    *mockService.MockEventPublisher
	mailer       *mockService.MockAcceptanceMailer
}

func createTestBidService(t *testing.T) *bidServiceFixture {
	txManager := mockRepo.NewMockTransactionManager(t)
	shipmentRepo := mockRepo.NewMockShipmentRepository(t)
	offerRepo := mockRepo.NewMockOfferRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	dispatcher := mockUsecase.NewMockNotificationDispatcher(t)
	publisher := mockService.NewMockEventPublisher(t)
	mailer := mockService.NewMockAcceptanceMailer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	txManager.Factory = &mockRepo.StubRepositoryFactory{
		ShipmentRepo:     shipmentRepo,
		OfferRepo:        offerRepo,
		NotificationRepo: mockRepo.NewMockNotificationRepository(t),
		ProfileRepo:      profileRepo,
	}

	return &bidServiceFixture{
		svc:          NewBidService(txManager, shipmentRepo, profileRepo, dispatcher, publisher, mailer, logger),
		txManager:    txManager,
		shipmentRepo: shipmentRepo,
		offerRepo:    offerRepo,
		profileRepo:  profileRepo,
		dispatcher:   dispatcher,
		publisher:    publisher,
		mailer:       mailer,
	}
}

func TestCreateShipment(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	importerID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, importerID).Return(&entity.Profile{
		ID:       importerID,
		Role:     entity.RoleImporter,
		MarketID: 3,
	}, nil)
	fx.shipmentRepo.On("CreateShipment", ctx, mock.AnythingOfType("*entity.Shipment")).
		Run(func(args mock.Arguments) {
			s := args.Get(1).(*entity.Shipment)
			s.ID = 42
			s.UUID = uuid.New()
		}).
		Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyAgentsNewShipment", ctx, int64(3), mock.AnythingOfType("*entity.Shipment")).
		Return(&usecase.FanOutResult{Succeeded: []uuid.UUID{uuid.New(), uuid.New()}}, nil)

	shipment, err := fx.svc.CreateShipment(ctx, importerID, usecase.CreateShipmentInput{
		Origin:         "Shanghai",
		Destination:    "Cartagena",
		ShippingType:   entity.ShippingMaritime,
		Value:          25000,
		Currency:       "USD",
		MarketID:       3,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), shipment.ID)
	assert.Equal(t, entity.ShipmentActive, shipment.Status)
	assert.Equal(t, importerID, shipment.ProfileID)
}

func TestCreateShipment_FanOutFailureDoesNotFail(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	importerID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, importerID).Return(&entity.Profile{
		ID: importerID, Role: entity.RoleImporter, MarketID: 3,
	}, nil)
	fx.shipmentRepo.On("CreateShipment", ctx, mock.Anything).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyAgentsNewShipment", ctx, int64(3), mock.Anything).
		Return(nil, errors.New("agent lookup failed"))

	_, err := fx.svc.CreateShipment(ctx, importerID, usecase.CreateShipmentInput{
		Origin:         "Shanghai",
		Destination:    "Cartagena",
		ShippingType:   entity.ShippingMaritime,
		MarketID:       3,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestCreateShipment_AgentsCannotOpen(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	agentID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(&entity.Profile{
		ID: agentID, Role: entity.RoleAgent, MarketID: 3,
	}, nil)

	_, err := fx.svc.CreateShipment(ctx, agentID, usecase.CreateShipmentInput{
		Origin:         "Shanghai",
		Destination:    "Cartagena",
		ShippingType:   entity.ShippingMaritime,
		MarketID:       3,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCreateShipment_UnknownShippingType(t *testing.T) {
	fx := createTestBidService(t)

	_, err := fx.svc.CreateShipment(context.Background(), uuid.New(), usecase.CreateShipmentInput{
		Origin:         "Shanghai",
		Destination:    "Cartagena",
		ShippingType:   entity.ShippingType("Rail"),
		MarketID:       3,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestListShipmentsByMarket_AgentOfferingScope(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	agentID := uuid.New()
	status := entity.ShipmentOffering

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(&entity.Profile{
		ID: agentID, Role: entity.RoleAgent, MarketID: 3,
	}, nil)
	fx.shipmentRepo.On("ListShipmentsByMarket", ctx, mock.MatchedBy(func(q repository.ShipmentQuery) bool {
		return q.MarketID == 3 && q.AgentID != nil && *q.AgentID == agentID
	})).Return([]*entity.Shipment{}, nil)

	_, err := fx.svc.ListShipmentsByMarket(ctx, agentID, usecase.ListShipmentsInput{
		MarketID: 3,
		Status:   &status,
	})
	assert.NoError(t, err)
}

func TestListShipmentsByMarket_ImporterUnscoped(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	importerID := uuid.New()
	status := entity.ShipmentOffering

	fx.profileRepo.On("FindProfileByID", ctx, importerID).Return(&entity.Profile{
		ID: importerID, Role: entity.RoleImporter, MarketID: 3,
	}, nil)
	fx.shipmentRepo.On("ListShipmentsByMarket", ctx, mock.MatchedBy(func(q repository.ShipmentQuery) bool {
		return q.MarketID == 3 && q.AgentID == nil
	})).Return([]*entity.Shipment{}, nil)

	_, err := fx.svc.ListShipmentsByMarket(ctx, importerID, usecase.ListShipmentsInput{
		MarketID: 3,
		Status:   &status,
	})
	assert.NoError(t, err)
}

func TestListShipmentsByMarket_RepeatedReadIsStable(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()
	importerID := uuid.New()

	// created_at DESC, id DESC as the repository orders them.
	now := time.Now()
	shipments := []*entity.Shipment{
		{ID: 44, UUID: uuid.New(), MarketID: 3, CreatedAt: now},
		{ID: 43, UUID: uuid.New(), MarketID: 3, CreatedAt: now},
		{ID: 42, UUID: uuid.New(), MarketID: 3, CreatedAt: now.Add(-time.Hour)},
	}

	fx.shipmentRepo.On("ListShipmentsByMarket", ctx, mock.MatchedBy(func(q repository.ShipmentQuery) bool {
		return q.MarketID == 3 && q.AgentID == nil
	})).Return(shipments, nil).Twice()

	first, err := fx.svc.ListShipmentsByMarket(ctx, importerID, usecase.ListShipmentsInput{MarketID: 3})
	require.NoError(t, err)

	second, err := fx.svc.ListShipmentsByMarket(ctx, importerID, usecase.ListShipmentsInput{MarketID: 3})
	require.NoError(t, err)

	// Two reads with no intervening writes return the same records in the
	// same order.
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(44), first[0].ID)
	assert.Equal(t, int64(43), first[1].ID)
	assert.Equal(t, int64(42), first[2].ID)
}

func TestCloseBid(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	winnerAgent := uuid.New()
	loserAgent := uuid.New()
	otherLoser := uuid.New()

	shipment := &entity.Shipment{
		ID:        42,
		UUID:      uuid.New(),
		ProfileID: importerID,
		Status:    entity.ShipmentOffering,
		MarketID:  3,
		Currency:  "USD",
	}
	winning := &entity.Offer{ID: 7, UUID: uuid.New(), ShipmentID: 42, AgentID: winnerAgent, Price: 5683, Status: entity.OfferPending}
	offers := []*entity.Offer{
		winning,
		// The same losing agent quoted twice; only the cheaper one is cited.
		{ID: 8, UUID: uuid.New(), ShipmentID: 42, AgentID: loserAgent, Price: 5950, Status: entity.OfferPending},
		{ID: 9, UUID: uuid.New(), ShipmentID: 42, AgentID: loserAgent, Price: 5800, Status: entity.OfferPending},
		{ID: 10, UUID: uuid.New(), ShipmentID: 42, AgentID: otherLoser, Price: 6100, Status: entity.OfferPending},
		// The winner's other offer never yields a rejection.
		{ID: 11, UUID: uuid.New(), ShipmentID: 42, AgentID: winnerAgent, Price: 6000, Status: entity.OfferPending},
	}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("FindOfferByID", ctx, int64(7)).Return(winning, nil)
	fx.offerRepo.On("ListOffersByShipment", ctx, int64(42)).Return(offers, nil)
	fx.shipmentRepo.On("CloseShipment", ctx, int64(42), int64(7)).Return(nil)
	fx.offerRepo.On("UpdateOfferStatus", ctx, int64(7), entity.OfferAccepted).Return(nil)
	fx.offerRepo.On("RejectSiblingOffers", ctx, int64(42), int64(7)).Return(nil)

	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyOfferAccepted", ctx, winnerAgent, shipment, winning).Return(nil)
	fx.dispatcher.On("NotifyOfferRejected", ctx, loserAgent, shipment, mock.MatchedBy(func(o *entity.Offer) bool {
		return o.ID == 9 && o.Price == 5800
	}), winning.Price).Return(nil)
	fx.dispatcher.On("NotifyOfferRejected", ctx, otherLoser, shipment, mock.MatchedBy(func(o *entity.Offer) bool {
		return o.ID == 10
	}), winning.Price).Return(nil)
	fx.mailer.On("SendAcceptanceEmails", ctx, int64(42), int64(7)).Return(nil)

	closed, err := fx.svc.CloseBid(ctx, importerID, 42, 7)
	require.NoError(t, err)

	assert.Equal(t, entity.ShipmentClosed, closed.Status)
	require.NotNil(t, closed.WinningOfferID)
	assert.Equal(t, int64(7), *closed.WinningOfferID)

	fx.dispatcher.AssertNumberOfCalls(t, "NotifyOfferRejected", 2)
}

func TestCloseBid_ConcurrentCloseLoses(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentOffering, MarketID: 3}
	winning := &entity.Offer{ID: 7, ShipmentID: 42, AgentID: uuid.New(), Status: entity.OfferPending}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("FindOfferByID", ctx, int64(7)).Return(winning, nil)
	fx.shipmentRepo.On("CloseShipment", ctx, int64(42), int64(7)).Return(repository.ErrShipmentAlreadyClosed)

	_, err := fx.svc.CloseBid(ctx, importerID, 42, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentClosed))

	// The losing close never reads the siblings, never notifies, never mails.
	fx.offerRepo.AssertNotCalled(t, "ListOffersByShipment", mock.Anything, mock.Anything)
	fx.dispatcher.AssertNotCalled(t, "NotifyOfferAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	fx.mailer.AssertNotCalled(t, "SendAcceptanceEmails", mock.Anything, mock.Anything, mock.Anything)
}

func TestCloseBid_SnapshotFollowsClose(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	winnerAgent := uuid.New()
	shipment := &entity.Shipment{ID: 42, UUID: uuid.New(), ProfileID: importerID, Status: entity.ShipmentOffering, MarketID: 3}
	winning := &entity.Offer{ID: 7, UUID: uuid.New(), ShipmentID: 42, AgentID: winnerAgent, Price: 5683, Status: entity.OfferPending}

	var calls []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { calls = append(calls, name) }
	}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("FindOfferByID", ctx, int64(7)).Return(winning, nil)
	fx.shipmentRepo.On("CloseShipment", ctx, int64(42), int64(7)).Run(record("close")).Return(nil)
	fx.offerRepo.On("ListOffersByShipment", ctx, int64(42)).Run(record("list")).Return([]*entity.Offer{winning}, nil)
	fx.offerRepo.On("UpdateOfferStatus", ctx, int64(7), entity.OfferAccepted).Return(nil)
	fx.offerRepo.On("RejectSiblingOffers", ctx, int64(42), int64(7)).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyOfferAccepted", ctx, winnerAgent, shipment, winning).Return(nil)
	fx.mailer.On("SendAcceptanceEmails", ctx, int64(42), int64(7)).Return(nil)

	_, err := fx.svc.CloseBid(ctx, importerID, 42, 7)
	require.NoError(t, err)

	// The sibling snapshot happens after the conditional close has won, so
	// the notification set matches the rows the bulk rejection touches.
	require.Equal(t, []string{"close", "list"}, calls)
}

func TestCloseBid_OwnershipViolation(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	shipment := &entity.Shipment{ID: 42, ProfileID: uuid.New(), Status: entity.ShipmentOffering}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	_, err := fx.svc.CloseBid(ctx, uuid.New(), 42, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentOwnershipViolation))
}

func TestCloseBid_OfferFromAnotherShipment(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentOffering}
	foreign := &entity.Offer{ID: 7, ShipmentID: 99, AgentID: uuid.New(), Status: entity.OfferPending}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("FindOfferByID", ctx, int64(7)).Return(foreign, nil)

	_, err := fx.svc.CloseBid(ctx, importerID, 42, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOfferShipmentMismatch))
}

func TestCloseBid_ShipmentNotFound(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(nil, repository.ErrShipmentNotFound)

	_, err := fx.svc.CloseBid(ctx, uuid.New(), 42, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentNotFound))
}

func TestCloseBid_MailerFailureDoesNotFail(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentOffering, MarketID: 3}
	winning := &entity.Offer{ID: 7, ShipmentID: 42, AgentID: uuid.New(), Status: entity.OfferPending}

	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("FindOfferByID", ctx, int64(7)).Return(winning, nil)
	fx.offerRepo.On("ListOffersByShipment", ctx, int64(42)).Return([]*entity.Offer{winning}, nil)
	fx.shipmentRepo.On("CloseShipment", ctx, int64(42), int64(7)).Return(nil)
	fx.offerRepo.On("UpdateOfferStatus", ctx, int64(7), entity.OfferAccepted).Return(nil)
	fx.offerRepo.On("RejectSiblingOffers", ctx, int64(42), int64(7)).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyOfferAccepted", ctx, winning.AgentID, shipment, winning).Return(nil)
	fx.mailer.On("SendAcceptanceEmails", ctx, int64(42), int64(7)).Return(errors.New("function unreachable"))

	closed, err := fx.svc.CloseBid(ctx, importerID, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentClosed, closed.Status)
}

func TestExtendDeadline(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	current := time.Now().Add(24 * time.Hour)
	extended := current.Add(96 * time.Hour)
	shipment := &entity.Shipment{
		ID:             42,
		ProfileID:      importerID,
		Status:         entity.ShipmentOffering,
		MarketID:       3,
		ExpirationDate: current,
	}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.shipmentRepo.On("UpdateExpirationDate", ctx, int64(42), extended).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyDeadlineExtended", ctx, importerID, shipment, extended).Return(nil)
	fx.dispatcher.On("NotifyAgentsDeadlineExtended", ctx, int64(3), shipment, extended).
		Return(&usecase.FanOutResult{}, nil)

	updated, err := fx.svc.ExtendDeadline(ctx, importerID, 42, extended)
	require.NoError(t, err)
	assert.Equal(t, extended, updated.ExpirationDate)
}

func TestExtendDeadline_ClosedShipment(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentClosed}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	_, err := fx.svc.ExtendDeadline(ctx, importerID, 42, time.Now().Add(96*time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentNotOpen))
}

func TestExtendDeadline_MustMoveForward(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	current := time.Now().Add(96 * time.Hour)
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentActive, ExpirationDate: current}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	_, err := fx.svc.ExtendDeadline(ctx, importerID, 42, current.Add(-24*time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUpdateStatus_TerminalStateRejectsTransitions(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentClosed}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	err := fx.svc.UpdateStatus(ctx, importerID, 42, entity.ShipmentCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
}

func TestUpdateStatus(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentActive, MarketID: 3}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.shipmentRepo.On("UpdateShipmentStatus", ctx, int64(42), entity.ShipmentCancelled).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyStatusChanged", ctx, importerID, shipment, entity.ShipmentActive, entity.ShipmentCancelled).
		Return(nil)

	err := fx.svc.UpdateStatus(ctx, importerID, 42, entity.ShipmentCancelled)
	assert.NoError(t, err)
}

func TestFlagExpiring(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	importerID := uuid.New()
	shipment := &entity.Shipment{ID: 42, ProfileID: importerID, Status: entity.ShipmentOffering, MarketID: 3}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.dispatcher.On("NotifyShipmentExpiring", ctx, importerID, shipment, 24).Return(nil)

	err := fx.svc.FlagExpiring(ctx, 42, 24)
	assert.NoError(t, err)
}

func TestFlagExpiring_SkipsTerminalShipments(t *testing.T) {
	fx := createTestBidService(t)
	ctx := context.Background()

	shipment := &entity.Shipment{ID: 42, ProfileID: uuid.New(), Status: entity.ShipmentClosed}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	err := fx.svc.FlagExpiring(ctx, 42, 24)
	assert.NoError(t, err)

	fx.dispatcher.AssertNotCalled(t, "NotifyShipmentExpiring", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
