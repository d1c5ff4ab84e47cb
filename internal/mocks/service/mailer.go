package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAcceptanceMailer is a mock implementation of service.AcceptanceMailer.
type MockAcceptanceMailer struct {
	mock.Mock
}

// NewMockAcceptanceMailer creates a mock wired to the test's lifecycle.
func NewMockAcceptanceMailer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAcceptanceMailer {
	m := &MockAcceptanceMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAcceptanceMailer) SendAcceptanceEmails(ctx context.Context, bidID, offerID int64) error {
	args := m.Called(ctx, bidID, offerID)

	return args.Error(0)
}
