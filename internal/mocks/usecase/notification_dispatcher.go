// Package usecase contains hand-written testify mocks for the use case
// interfaces that other use cases depend on.
package usecase

import (
	"context"
	"time"

	"logbid/internal/domain/entity"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationDispatcher is a mock implementation of usecase.NotificationDispatcher.
type MockNotificationDispatcher struct {
	mock.Mock
}

// NewMockNotificationDispatcher creates a mock wired to the test's lifecycle.
func NewMockNotificationDispatcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationDispatcher {
	m := &MockNotificationDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationDispatcher) NotifyNewOffer(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error {
	args := m.Called(ctx, importerID, shipment, offer)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyOfferAccepted(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, offer *entity.Offer) error {
	args := m.Called(ctx, agentID, shipment, offer)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyOfferRejected(ctx context.Context, agentID uuid.UUID, shipment *entity.Shipment, losingOffer *entity.Offer, winningPrice float64) error {
	args := m.Called(ctx, agentID, shipment, losingOffer, winningPrice)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyShipmentExpiring(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, hoursUntilExpiration int) error {
	args := m.Called(ctx, importerID, shipment, hoursUntilExpiration)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyStatusChanged(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, oldStatus, newStatus entity.ShipmentStatus) error {
	args := m.Called(ctx, importerID, shipment, oldStatus, newStatus)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyDeadlineExtended(ctx context.Context, importerID uuid.UUID, shipment *entity.Shipment, newExpiration time.Time) error {
	args := m.Called(ctx, importerID, shipment, newExpiration)

	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyAgentsDeadlineExtended(ctx context.Context, marketID int64, shipment *entity.Shipment, newExpiration time.Time) (*usecase.FanOutResult, error) {
	args := m.Called(ctx, marketID, shipment, newExpiration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.FanOutResult), args.Error(1)
}

func (m *MockNotificationDispatcher) NotifyAgentsNewShipment(ctx context.Context, marketID int64, shipment *entity.Shipment) (*usecase.FanOutResult, error) {
	args := m.Called(ctx, marketID, shipment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.FanOutResult), args.Error(1)
}
