package repository

import (
	"context"

	"logbid/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// StubRepositoryFactory hands out preconfigured repositories, standing in for
// the transaction-bound factory the real TransactionManager builds.
type StubRepositoryFactory struct {
	ShipmentRepo     repository.ShipmentRepository
	OfferRepo        repository.OfferRepository
	NotificationRepo repository.NotificationRepository
	ProfileRepo      repository.ProfileRepository
}

func (f *StubRepositoryFactory) NewShipmentRepository() repository.ShipmentRepository {
	return f.ShipmentRepo
}

func (f *StubRepositoryFactory) NewOfferRepository() repository.OfferRepository {
	return f.OfferRepo
}

func (f *StubRepositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return f.NotificationRepo
}

func (f *StubRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return f.ProfileRepo
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// When Factory is set, Execute runs the callback against it and propagates the
// callback's error, mirroring the real commit/rollback decision.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

// NewMockTransactionManager creates a mock wired to the test's lifecycle.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	if m.Factory != nil {
		if err := fn(m.Factory); err != nil {
			return err
		}
	}

	return args.Error(0)
}
