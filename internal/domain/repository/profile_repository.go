package repository

import (
	"context"
	"errors"

	"logbid/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the interface for profile lookups. Identity
// management lives in the external auth provider; this repository only reads
// the marketplace attributes mirrored into the profiles table.
type ProfileRepository interface {
	// FindProfileByID retrieves a profile by its UUID.
	FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindAgentsByMarket retrieves every agent profile registered in the market.
	// The lookup sees all agents regardless of the caller's own visibility scope,
	// which market-wide fan-outs depend on.
	FindAgentsByMarket(ctx context.Context, marketID int64) ([]*entity.Profile, error)
}
