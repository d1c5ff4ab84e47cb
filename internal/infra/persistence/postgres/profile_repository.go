package postgres

import (
	"context"

	"logbid/internal/domain/entity"
	"logbid/internal/domain/repository"
	"logbid/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindProfileByID retrieves a profile by its UUID.
func (repo *profileRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by ID")
	}

	return toProfileDomain(&profileM), nil
}

// FindAgentsByMarket retrieves every agent profile registered in the market.
// Fan-outs rely on this query seeing all agents, so it runs without any
// per-caller visibility scoping.
func (repo *profileRepository) FindAgentsByMarket(ctx context.Context, marketID int64) ([]*entity.Profile, error) {
	var profileModels []*model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("role = ? AND market_id = ?", entity.RoleAgent.String(), marketID).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find agents by market")
	}

	profiles := make([]*entity.Profile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toProfileDomain(profileM))
	}

	return profiles, nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:        data.ID,
		Email:     data.Email,
		FullName:  data.FullName,
		Role:      entity.ProfileRole(data.Role),
		AgentCode: data.AgentCode,
		MarketID:  data.MarketID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
