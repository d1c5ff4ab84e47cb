package impl

import (
	"context"
	"log/slog"

	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	"logbid/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultFeedPageSize = 20
	maxFeedPageSize     = 100
)

// feedService implements the NotificationFeedUsecase interface.
type feedService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewFeedService is the constructor for feedService.
func NewFeedService(
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.NotificationFeedUsecase {
	return &feedService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListNotifications retrieves a page of the user's feed, most recent first.
func (srv *feedService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	if limit > maxFeedPageSize {
		limit = maxFeedPageSize
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := srv.notificationRepo.ListNotificationsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// UnreadCount returns how many notifications the user has not read yet.
func (srv *feedService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := srv.notificationRepo.CountUnreadByUser(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// MarkRead flips one notification's read flag. The write is scoped to the
// acting user, so marking someone else's notification reads as not found.
func (srv *feedService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	if err := srv.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return errors.Wrap(domainerrors.ErrNotificationNotFound, "notification not found")
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead flips the read flag on the user's entire unread backlog.
func (srv *feedService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := srv.notificationRepo.MarkAllNotificationsRead(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to mark all notifications read")
	}

	return nil
}

// Delete removes one notification from the user's feed.
func (srv *feedService) Delete(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	if err := srv.notificationRepo.DeleteNotification(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return errors.Wrap(domainerrors.ErrNotificationNotFound, "notification not found")
		}

		return errors.Wrap(err, "failed to delete notification")
	}

	return nil
}
