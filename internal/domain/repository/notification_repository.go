package repository

import (
	"context"
	"errors"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found or
// belongs to a different user.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification-related database operations.
type NotificationRepository interface {
	// CreateNotification persists a single notification for one recipient.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// FindNotificationByID retrieves a notification by its id.
	FindNotificationByID(ctx context.Context, id int64) (*entity.Notification, error)

	// ListNotificationsByUser retrieves a page of the user's notifications,
	// most recent first.
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// CountUnreadByUser returns the number of unread notifications for the user.
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkNotificationRead flips the read flag of one notification. Scoped to
	// the owning user; touches nothing else on the row.
	MarkNotificationRead(ctx context.Context, id int64, userID uuid.UUID) error

	// MarkAllNotificationsRead flips the read flag on every unread notification
	// of the user.
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error

	// DeleteNotification removes one notification. Scoped to the owning user.
	DeleteNotification(ctx context.Context, id int64, userID uuid.UUID) error
}
