package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRole distinguishes the two sides of the marketplace.
type ProfileRole string

const (
	// RoleImporter opens shipments and accepts offers.
	RoleImporter ProfileRole = "importer"
	// RoleAgent browses shipments and submits offers.
	RoleAgent ProfileRole = "agent"
)

// String returns the string representation of the ProfileRole.
func (r ProfileRole) String() string {
	return string(r)
}

// IsValid checks if the ProfileRole is a valid value.
func (r ProfileRole) IsValid() bool {
	switch r {
	case RoleImporter, RoleAgent:
		return true
	default:
		return false
	}
}

// Profile represents a marketplace participant. Identity and credentials live
// in the external auth provider; this record carries marketplace attributes.
type Profile struct {
	ID        uuid.UUID   `json:"id"`         // Matches the auth provider's user id.
	Email     string      `json:"email"`      // Contact address for the acceptance email.
	FullName  string      `json:"full_name"`  // Display name.
	Role      ProfileRole `json:"role"`       // importer or agent.
	AgentCode string      `json:"agent_code"` // Pseudonym for agents, empty for importers.
	MarketID  int64       `json:"market_id"`  // The marketplace region the profile belongs to.
	CreatedAt time.Time   `json:"created_at"` // Timestamp of when this record was created.
	UpdatedAt time.Time   `json:"updated_at"` // Timestamp of the last modification.
}
