package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. The id matches the external auth
// provider's user id; credentials never live here.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	FullName  string    `gorm:"type:varchar(100)"`
	Role      string    `gorm:"type:text;not null;index:idx_profiles_role_market"`
	AgentCode string    `gorm:"type:varchar(20)"`
	MarketID  int64     `gorm:"not null;index:idx_profiles_role_market"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
