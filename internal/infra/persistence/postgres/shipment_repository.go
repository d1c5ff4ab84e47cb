// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	"logbid/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shipmentRepository implements the repository.ShipmentRepository interface.
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository is the constructor for shipmentRepository.
func NewShipmentRepository(db *gorm.DB) repository.ShipmentRepository {
	return &shipmentRepository{
		db: db,
	}
}

// CreateShipment persists a new shipment and fills in the generated values.
func (repo *shipmentRepository) CreateShipment(ctx context.Context, shipment *entity.Shipment) error {
	shipmentM := fromShipmentDomain(shipment)

	if err := repo.db.WithContext(ctx).Create(shipmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid importer or market reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required shipment information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shipment")
	}

	// Update the entity with generated values
	shipment.ID = shipmentM.ID
	shipment.UUID = shipmentM.UUID
	shipment.CreatedAt = shipmentM.CreatedAt
	shipment.UpdatedAt = shipmentM.UpdatedAt

	return nil
}

// FindShipmentByID retrieves a shipment by its numeric id.
func (repo *shipmentRepository) FindShipmentByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	var shipmentM model.ShipmentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&shipmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment by ID")
	}

	return toShipmentDomain(&shipmentM), nil
}

// FindShipmentByUUID retrieves a shipment by its public UUID.
func (repo *shipmentRepository) FindShipmentByUUID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	var shipmentM model.ShipmentModel

	if err := repo.db.WithContext(ctx).
		Where("uuid = ?", id).
		First(&shipmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment by UUID")
	}

	return toShipmentDomain(&shipmentM), nil
}

// ListShipmentsByMarket retrieves shipments matching the query filters.
// The ordering is fixed so repeated reads return the same sequence.
func (repo *shipmentRepository) ListShipmentsByMarket(ctx context.Context, query repository.ShipmentQuery) ([]*entity.Shipment, error) {
	var shipmentModels []*model.ShipmentModel

	tx := repo.db.WithContext(ctx).
		Where("market_id = ?", query.MarketID)

	if query.Status != nil {
		tx = tx.Where("status = ?", query.Status.String())
	}
	if query.ShippingType != nil {
		tx = tx.Where("shipping_type = ?", query.ShippingType.String())
	}
	if query.AgentID != nil {
		// Scope to shipments the agent has quoted.
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM offers WHERE offers.shipment_id = shipments.id AND offers.agent_id = ?)",
			*query.AgentID,
		)
	}

	if err := tx.Order("created_at DESC, id DESC").Find(&shipmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list shipments by market")
	}

	shipments := make([]*entity.Shipment, 0, len(shipmentModels))
	for _, shipmentM := range shipmentModels {
		shipments = append(shipments, toShipmentDomain(shipmentM))
	}

	return shipments, nil
}

// CloseShipment atomically transitions the shipment to Closed and records the
// winning offer. The condition on status makes concurrent closes race-safe:
// exactly one caller sees a row affected, the rest get ErrShipmentAlreadyClosed.
func (repo *shipmentRepository) CloseShipment(ctx context.Context, shipmentID, winningOfferID int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ? AND status NOT IN ?", shipmentID, []string{
			entity.ShipmentClosed.String(),
			entity.ShipmentCancelled.String(),
			entity.ShipmentExpired.String(),
		}).
		Updates(map[string]interface{}{
			"status":           entity.ShipmentClosed.String(),
			"winning_offer_id": winningOfferID,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to close shipment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShipmentAlreadyClosed
	}

	return nil
}

// UpdateShipmentStatus sets a new lifecycle status.
func (repo *shipmentRepository) UpdateShipmentStatus(ctx context.Context, shipmentID int64, status entity.ShipmentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update shipment status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShipmentNotFound
	}

	return nil
}

// UpdateExpirationDate moves the offer deadline.
func (repo *shipmentRepository) UpdateExpirationDate(ctx context.Context, shipmentID int64, expiration time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Update("expiration_date", expiration)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update shipment expiration")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShipmentNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toShipmentDomain converts a GORM ShipmentModel to a domain Shipment entity.
func toShipmentDomain(data *model.ShipmentModel) *entity.Shipment {
	if data == nil {
		return nil
	}

	return &entity.Shipment{
		ID:                 data.ID,
		UUID:               data.UUID,
		ProfileID:          data.ProfileID,
		Status:             entity.ShipmentStatus(data.Status),
		Origin:             data.Origin,
		OriginCountry:      data.OriginCountry,
		Destination:        data.Destination,
		DestinationCountry: data.DestinationCountry,
		ShippingType:       entity.ShippingType(data.ShippingType),
		Value:              data.Value,
		Currency:           data.Currency,
		AdditionalInfo:     data.AdditionalInfo,
		MarketID:           data.MarketID,
		WinningOfferID:     data.WinningOfferID,
		ExpirationDate:     data.ExpirationDate,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromShipmentDomain converts a domain Shipment entity to a GORM ShipmentModel.
func fromShipmentDomain(data *entity.Shipment) *model.ShipmentModel {
	if data == nil {
		return nil
	}

	return &model.ShipmentModel{
		ID:                 data.ID,
		UUID:               data.UUID,
		ProfileID:          data.ProfileID,
		Status:             data.Status.String(),
		Origin:             data.Origin,
		OriginCountry:      data.OriginCountry,
		Destination:        data.Destination,
		DestinationCountry: data.DestinationCountry,
		ShippingType:       data.ShippingType.String(),
		Value:              data.Value,
		Currency:           data.Currency,
		AdditionalInfo:     data.AdditionalInfo,
		MarketID:           data.MarketID,
		WinningOfferID:     data.WinningOfferID,
		ExpirationDate:     data.ExpirationDate,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
