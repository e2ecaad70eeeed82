package models

import (
	"time"

	"blogdesk/internal/moderation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID                 string          `gorm:"primaryKey;type:uuid" json:"id"`
	FirstName          string          `gorm:"not null;size:100" json:"first_name"`
	LastName           string          `gorm:"not null;size:100" json:"last_name"`
	Email              string          `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password           string          `gorm:"column:password_hash;not null" json:"-"` // never serialized
	HashedRefreshToken *string         `gorm:"column:hashed_refresh_token" json:"-"`
	Role               moderation.Role `gorm:"type:varchar(16);default:'user';not null;index" json:"role"`
	IsActive           bool            `gorm:"default:true;not null" json:"is_active"`
	LastLogin          *time.Time      `json:"last_login,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a Profile
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Role == "" {
		p.Role = moderation.RoleUser
	}
	return
}

func (Profile) TableName() string {
	return "profiles"
}

// Actor is the policy view of this profile.
func (p *Profile) Actor() moderation.Actor {
	return moderation.Actor{ID: p.ID, Role: p.Role}
}
