package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OfferModel mirrors the 'offers' table. Details holds the structured fee
// breakdown as JSONB; its shape depends on the shipping type.
type OfferModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UUID         uuid.UUID `gorm:"type:uuid;unique;not null;default:uuid_generate_v7()"`
	ShipmentID   int64     `gorm:"not null;index"`
	AgentID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentCode    string    `gorm:"type:text;not null"`
	Price        float64   `gorm:"type:numeric(14,2);not null"`
	Currency     string    `gorm:"type:varchar(3);not null"`
	ShippingType string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:text;not null;default:'pending';index"`
	Details      datatypes.JSON
	InsertedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}
