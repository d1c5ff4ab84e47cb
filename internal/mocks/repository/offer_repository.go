package repository

import (
	"context"

	"logbid/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockOfferRepository is a mock implementation of repository.OfferRepository.
type MockOfferRepository struct {
	mock.Mock
}

// NewMockOfferRepository creates a mock wired to the test's lifecycle.
func NewMockOfferRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOfferRepository {
	m := &MockOfferRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOfferRepository) CreateOffer(ctx context.Context, offer *entity.Offer) error {
	args := m.Called(ctx, offer)

	return args.Error(0)
}

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, id int64) (*entity.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListOffersByShipment(ctx context.Context, shipmentID int64) ([]*entity.Offer, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) UpdateOfferStatus(ctx context.Context, offerID int64, status entity.OfferStatus) error {
	args := m.Called(ctx, offerID, status)

	return args.Error(0)
}

func (m *MockOfferRepository) RejectSiblingOffers(ctx context.Context, shipmentID, winningOfferID int64) error {
	args := m.Called(ctx, shipmentID, winningOfferID)

	return args.Error(0)
}
