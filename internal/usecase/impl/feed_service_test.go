package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	mockRepo "logbid/internal/mocks/repository"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFeedService(t *testing.T) (usecase.NotificationFeedUsecase, *mockRepo.MockNotificationRepository) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewFeedService(notificationRepo, logger), notificationRepo
}

func TestListNotifications(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	feed := []*entity.Notification{
		{ID: 2, UserID: userID, Type: entity.NotificationNewOffer},
		{ID: 1, UserID: userID, Type: entity.NotificationNewShipment},
	}

	notificationRepo.On("ListNotificationsByUser", ctx, userID, 20, 0).Return(feed, nil)

	got, err := svc.ListNotifications(ctx, userID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListNotifications_DefaultsAndClampsPageSize(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("ListNotificationsByUser", ctx, userID, 20, 0).Return([]*entity.Notification{}, nil).Once()
	notificationRepo.On("ListNotificationsByUser", ctx, userID, 100, 0).Return([]*entity.Notification{}, nil).Once()

	_, err := svc.ListNotifications(ctx, userID, 0, -5)
	require.NoError(t, err)

	_, err = svc.ListNotifications(ctx, userID, 500, 0)
	require.NoError(t, err)
}

func TestUnreadCount(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("CountUnreadByUser", ctx, userID).Return(int64(5), nil)

	count, err := svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestMarkRead(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("MarkNotificationRead", ctx, int64(11), userID).Return(nil)

	assert.NoError(t, svc.MarkRead(ctx, userID, 11))
}

func TestMarkRead_OtherUsersNotificationReadsAsNotFound(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("MarkNotificationRead", ctx, int64(11), userID).
		Return(repository.ErrNotificationNotFound)

	err := svc.MarkRead(ctx, userID, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotificationNotFound))
}

func TestMarkAllRead(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("MarkAllNotificationsRead", ctx, userID).Return(nil)

	assert.NoError(t, svc.MarkAllRead(ctx, userID))
}

func TestDelete_NotFound(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("DeleteNotification", ctx, int64(11), userID).
		Return(repository.ErrNotificationNotFound)

	err := svc.Delete(ctx, userID, 11)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotificationNotFound))
}

func TestDelete(t *testing.T) {
	svc, notificationRepo := createTestFeedService(t)
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("DeleteNotification", ctx, int64(11), userID).Return(nil)

	assert.NoError(t, svc.Delete(ctx, userID, 11))
}
