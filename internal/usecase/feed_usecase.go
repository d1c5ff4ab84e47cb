package usecase

import (
	"context"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationFeedUsecase serves a recipient's notification feed. All
// operations are scoped to the acting user; nobody can read or mutate another
// user's feed through this interface.
type NotificationFeedUsecase interface {
	// ListNotifications retrieves a page of the user's feed, most recent first.
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// UnreadCount returns how many notifications the user has not read yet.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flips one notification's read flag. Nothing else on the record
	// changes, and the flag is never reverted.
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID int64) error

	// MarkAllRead flips the read flag on the user's entire unread backlog.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete removes one notification from the user's feed.
	Delete(ctx context.Context, userID uuid.UUID, notificationID int64) error
}
