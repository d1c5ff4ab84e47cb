package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationModel mirrors the 'notifications' table. Data carries the typed
// payload as JSONB, discriminated by Type.
type NotificationModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created"`
	Type       string    `gorm:"type:text;not null"`
	Title      string    `gorm:"type:text;not null"`
	Message    string    `gorm:"type:text;not null"`
	Data       datatypes.JSON
	ShipmentID *int64
	OfferID    *int64
	MarketID   *int64
	Read       bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"index:idx_notifications_user_created,sort:desc"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
