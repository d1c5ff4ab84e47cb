// Package repository contains hand-written testify mocks for the persistence
// interfaces, used by the use case test suites.
package repository

import (
	"context"
	"time"

	"logbid/internal/domain/entity"
	"logbid/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockShipmentRepository is a mock implementation of repository.ShipmentRepository.
type MockShipmentRepository struct {
	mock.Mock
}

// NewMockShipmentRepository creates a mock wired to the test's lifecycle.
func NewMockShipmentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockShipmentRepository {
	m := &MockShipmentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockShipmentRepository) CreateShipment(ctx context.Context, shipment *entity.Shipment) error {
	args := m.Called(ctx, shipment)

	return args.Error(0)
}

func (m *MockShipmentRepository) FindShipmentByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindShipmentByUUID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListShipmentsByMarket(ctx context.Context, query repository.ShipmentQuery) ([]*entity.Shipment, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) CloseShipment(ctx context.Context, shipmentID, winningOfferID int64) error {
	args := m.Called(ctx, shipmentID, winningOfferID)

	return args.Error(0)
}

func (m *MockShipmentRepository) UpdateShipmentStatus(ctx context.Context, shipmentID int64, status entity.ShipmentStatus) error {
	args := m.Called(ctx, shipmentID, status)

	return args.Error(0)
}

func (m *MockShipmentRepository) UpdateExpirationDate(ctx context.Context, shipmentID int64, expiration time.Time) error {
	args := m.Called(ctx, shipmentID, expiration)

	return args.Error(0)
}
