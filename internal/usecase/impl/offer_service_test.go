package impl

import (
	"context"
	"encoding/json"
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

// maritimeDetails5683 sums to 5683: freight 5000, origin 150, destination 115,
// other 418. The collect fee percentage is carried but never summed.
const maritimeDetails5683 = `{
	"freight_value": 5000,
	"container_type": "40ft",
	"origin_fees": {"security_manifest": 100, "handling": 50},
	"destination_fees": {"handling": 65, "bl_emission": 0, "agency": 50, "collect_fee": "2.5%"},
	"other_fees": {"pre_shipment_inspection": 120, "carbon": 48, "security_facility": 35, "low_sulfur": 90, "security_manifest": 25, "other": 100}
}`

type offerServiceFixture struct {
	svc          usecase.OfferUsecase
	txManager    *mockRepo.MockTransactionManager
	offerRepo    *mockRepo.MockOfferRepository
	shipmentRepo *mockRepo.MockShipmentRepository
	profileRepo  *mockRepo.MockProfileRepository
	dispatcher   *mockUsecase.MockNotificationDispatcher
	publisher    *mockService.MockEventPublisher
}

func createTestOfferService(t *testing.T) *offerServiceFixture {
	txManager := mockRepo.NewMockTransactionManager(t)
	offerRepo := mockRepo.NewMockOfferRepository(t)
	shipmentRepo := mockRepo.NewMockShipmentRepository(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	dispatcher := mockUsecase.NewMockNotificationDispatcher(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	txManager.Factory = &mockRepo.StubRepositoryFactory{
		ShipmentRepo:     shipmentRepo,
		OfferRepo:        offerRepo,
		NotificationRepo: mockRepo.NewMockNotificationRepository(t),
		ProfileRepo:      profileRepo,
	}

	return &offerServiceFixture{
		svc:          NewOfferService(txManager, offerRepo, shipmentRepo, profileRepo, dispatcher, publisher, logger),
		txManager:    txManager,
		offerRepo:    offerRepo,
		shipmentRepo: shipmentRepo,
		profileRepo:  profileRepo,
		dispatcher:   dispatcher,
		publisher:    publisher,
	}
}

func openShipment(importerID uuid.UUID) *entity.Shipment {
	return &entity.Shipment{
		ID:             42,
		UUID:           uuid.New(),
		ProfileID:      importerID,
		Status:         entity.ShipmentActive,
		Origin:         "Shanghai",
		Destination:    "Cartagena",
		ShippingType:   entity.ShippingMaritime,
		Currency:       "USD",
		MarketID:       3,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	}
}

func agentProfile(agentID uuid.UUID) *entity.Profile {
	return &entity.Profile{
		ID:        agentID,
		Role:      entity.RoleAgent,
		AgentCode: "AGT-021",
		MarketID:  3,
	}
}

func TestSubmitOffer(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()

	importerID := uuid.New()
	agentID := uuid.New()
	shipment := openShipment(importerID)

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("CreateOffer", ctx, mock.AnythingOfType("*entity.Offer")).
		Run(func(args mock.Arguments) {
			o := args.Get(1).(*entity.Offer)
			o.ID = 7
			o.UUID = uuid.New()
		}).
		Return(nil)
	fx.shipmentRepo.On("UpdateShipmentStatus", ctx, int64(42), entity.ShipmentOffering).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyNewOffer", ctx, importerID, shipment, mock.MatchedBy(func(o *entity.Offer) bool {
		return o.ID == 7 && o.Price == 5683
	})).Return(nil)

	offer, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), offer.ID)
	assert.Equal(t, entity.OfferPending, offer.Status)
	assert.Equal(t, "AGT-021", offer.AgentCode)
	assert.Equal(t, agentID, offer.AgentID)
	assert.Equal(t, entity.ShipmentOffering, shipment.Status)
}

func TestSubmitOffer_SecondOfferKeepsOfferingStatus(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()

	importerID := uuid.New()
	agentID := uuid.New()
	shipment := openShipment(importerID)
	shipment.Status = entity.ShipmentOffering

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("CreateOffer", ctx, mock.Anything).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyNewOffer", ctx, importerID, shipment, mock.Anything).Return(nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.NoError(t, err)

	fx.shipmentRepo.AssertNotCalled(t, "UpdateShipmentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOffer_PriceMismatch(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	agentID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5000,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "OFFER_PRICE_MISMATCH", appErr.ErrorCode())

	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestSubmitOffer_SubCentDriftTolerated(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()

	importerID := uuid.New()
	agentID := uuid.New()
	shipment := openShipment(importerID)

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("CreateOffer", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("UpdateShipmentStatus", ctx, int64(42), entity.ShipmentOffering).Return(nil)
	fx.publisher.On("PublishRealtimeEvent", ctx, mock.Anything).Return(nil)
	fx.dispatcher.On("NotifyNewOffer", ctx, importerID, shipment, mock.Anything).Return(nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683.005,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	assert.NoError(t, err)
}

func TestSubmitOffer_ClosedShipment(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	agentID := uuid.New()

	shipment := openShipment(uuid.New())
	shipment.Status = entity.ShipmentClosed

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentNotOpen))

	fx.offerRepo.AssertNotCalled(t, "CreateOffer", mock.Anything, mock.Anything)
}

func TestSubmitOffer_ShippingTypeMustMatchShipment(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	agentID := uuid.New()

	shipment := openShipment(uuid.New())
	shipment.ShippingType = entity.ShippingAir

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		Currency:     "USD",
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestSubmitOffer_ImportersCannotQuote(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	importerID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, importerID).Return(&entity.Profile{
		ID: importerID, Role: entity.RoleImporter, MarketID: 3,
	}, nil)

	_, err := fx.svc.SubmitOffer(ctx, importerID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestSubmitOffer_ForeignMarket(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	agentID := uuid.New()

	profile := agentProfile(agentID)
	profile.MarketID = 9

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(profile, nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(openShipment(uuid.New()), nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        5683,
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(maritimeDetails5683),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestSubmitOffer_MalformedDetails(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()
	agentID := uuid.New()

	fx.profileRepo.On("FindProfileByID", ctx, agentID).Return(agentProfile(agentID), nil)

	_, err := fx.svc.SubmitOffer(ctx, agentID, usecase.SubmitOfferInput{
		ShipmentID:   42,
		Price:        100,
		ShippingType: entity.ShippingMaritime,
		Details:      json.RawMessage(`{"freight_value":`),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestListOffersForShipment(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()

	shipment := openShipment(uuid.New())
	offers := []*entity.Offer{
		{ID: 7, ShipmentID: 42, Price: 5683},
		{ID: 8, ShipmentID: 42, Price: 5950},
	}

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(shipment, nil)
	fx.offerRepo.On("ListOffersByShipment", ctx, int64(42)).Return(offers, nil)

	got, err := fx.svc.ListOffersForShipment(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListOffersForShipment_ShipmentNotFound(t *testing.T) {
	fx := createTestOfferService(t)
	ctx := context.Background()

	fx.shipmentRepo.On("FindShipmentByID", ctx, int64(42)).Return(nil, repository.ErrShipmentNotFound)

	_, err := fx.svc.ListOffersForShipment(ctx, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrShipmentNotFound))
}
