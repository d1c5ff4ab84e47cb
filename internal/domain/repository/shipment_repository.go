// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for shipment persistence.
var (
	// ErrShipmentNotFound is returned when a shipment is not found.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrShipmentAlreadyClosed is returned when the conditional close touches no
	// row because the shipment is already in a terminal state.
	ErrShipmentAlreadyClosed = errors.New("shipment already closed")
)

// ShipmentQuery carries the equality filters for market listings. Nil filter
// fields match everything. AgentID scopes the result to shipments the agent
// has quoted, used when filtering on the Offering status.
type ShipmentQuery struct {
	MarketID     int64
	Status       *entity.ShipmentStatus
	ShippingType *entity.ShippingType
	AgentID      *uuid.UUID
}

// ShipmentRepository defines the interface for shipment-related database operations.
type ShipmentRepository interface {
	// CreateShipment persists a new shipment and fills in the generated id and UUID.
	CreateShipment(ctx context.Context, shipment *entity.Shipment) error

	// FindShipmentByID retrieves a shipment by its numeric id.
	FindShipmentByID(ctx context.Context, id int64) (*entity.Shipment, error)

	// FindShipmentByUUID retrieves a shipment by its public UUID.
	FindShipmentByUUID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)

	// ListShipmentsByMarket retrieves shipments matching the query, most recent
	// first with id as tiebreaker so repeated reads return the same order.
	ListShipmentsByMarket(ctx context.Context, query ShipmentQuery) ([]*entity.Shipment, error)

	// CloseShipment atomically sets the status to Closed and records the winning
	// offer, but only while the shipment is not already in a terminal state.
	// Returns ErrShipmentAlreadyClosed when the conditional write touches no row.
	CloseShipment(ctx context.Context, shipmentID, winningOfferID int64) error

	// UpdateShipmentStatus sets a new lifecycle status.
	UpdateShipmentStatus(ctx context.Context, shipmentID int64, status entity.ShipmentStatus) error

	// UpdateExpirationDate moves the offer deadline.
	UpdateExpirationDate(ctx context.Context, shipmentID int64, expiration time.Time) error
}
