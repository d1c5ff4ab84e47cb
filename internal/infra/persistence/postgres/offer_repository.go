package postgres

import (
	"context"
	"encoding/json"

	"logbid/internal/domain/entity"
	domainerrors "logbid/internal/domain/errors"
	"logbid/internal/domain/repository"
	"logbid/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// offerRepository implements the repository.OfferRepository interface.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{
		db: db,
	}
}

// CreateOffer persists a new offer and fills in the generated values.
func (repo *offerRepository) CreateOffer(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid shipment or agent reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required offer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	// Update the entity with generated values
	offer.ID = offerM.ID
	offer.UUID = offerM.UUID
	offer.InsertedAt = offerM.InsertedAt
	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// FindOfferByID retrieves an offer by its numeric id.
func (repo *offerRepository) FindOfferByID(ctx context.Context, id int64) (*entity.Offer, error) {
	var offerM model.OfferModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&offerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by ID")
	}

	return toOfferDomain(&offerM), nil
}

// ListOffersByShipment retrieves all offers submitted against a shipment.
func (repo *offerRepository) ListOffersByShipment(ctx context.Context, shipmentID int64) ([]*entity.Offer, error) {
	var offerModels []*model.OfferModel

	if err := repo.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("inserted_at DESC, id DESC").
		Find(&offerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list offers by shipment")
	}

	offers := make([]*entity.Offer, 0, len(offerModels))
	for _, offerM := range offerModels {
		offers = append(offers, toOfferDomain(offerM))
	}

	return offers, nil
}

// UpdateOfferStatus sets the status of a single offer.
func (repo *offerRepository) UpdateOfferStatus(ctx context.Context, offerID int64, status entity.OfferStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("id = ?", offerID).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update offer status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// RejectSiblingOffers marks every pending offer of the shipment except the
// winning one as rejected. Zero rows affected is fine: the winner may have
// been the only offer.
func (repo *offerRepository) RejectSiblingOffers(ctx context.Context, shipmentID, winningOfferID int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Where("shipment_id = ? AND id <> ? AND status = ?",
			shipmentID, winningOfferID, entity.OfferPending.String()).
		Update("status", entity.OfferRejected.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to reject sibling offers")
	}

	return nil
}

// --- Mapper Functions ---

// toOfferDomain converts a GORM OfferModel to a domain Offer entity.
func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	return &entity.Offer{
		ID:           data.ID,
		UUID:         data.UUID,
		ShipmentID:   data.ShipmentID,
		AgentID:      data.AgentID,
		AgentCode:    data.AgentCode,
		Price:        data.Price,
		Currency:     data.Currency,
		ShippingType: entity.ShippingType(data.ShippingType),
		Status:       entity.OfferStatus(data.Status),
		Details:      json.RawMessage(data.Details),
		InsertedAt:   data.InsertedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromOfferDomain converts a domain Offer entity to a GORM OfferModel.
func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	return &model.OfferModel{
		ID:           data.ID,
		UUID:         data.UUID,
		ShipmentID:   data.ShipmentID,
		AgentID:      data.AgentID,
		AgentCode:    data.AgentCode,
		Price:        data.Price,
		Currency:     data.Currency,
		ShippingType: data.ShippingType.String(),
		Status:       data.Status.String(),
		Details:      datatypes.JSON(data.Details),
		InsertedAt:   data.InsertedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
