// Package model holds the GORM-specific structs mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel mirrors the 'shipments' table. The numeric id is the primary
// key; the UUID is the external-facing identifier shared with clients.
type ShipmentModel struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	UUID               uuid.UUID `gorm:"type:uuid;unique;not null;default:uuid_generate_v7()"`
	ProfileID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:text;not null;default:'Active';index"`
	Origin             string    `gorm:"type:text;not null"`
	OriginCountry      string    `gorm:"type:text;not null"`
	Destination        string    `gorm:"type:text;not null"`
	DestinationCountry string    `gorm:"type:text;not null"`
	ShippingType       string    `gorm:"type:text;not null"`
	Value              float64   `gorm:"type:numeric(14,2);not null"`
	Currency           string    `gorm:"type:varchar(3);not null"`
	AdditionalInfo     string    `gorm:"type:text"`
	MarketID           int64     `gorm:"not null;index"`
	WinningOfferID     *int64
	ExpirationDate     time.Time `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Offers []OfferModel `gorm:"foreignKey:ShipmentID"`
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "shipments"
}
