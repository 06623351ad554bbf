package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthCodeType distinguishes the two one-time code flows.
type AuthCodeType string

const (
	AuthCodeEmailConfirmation AuthCodeType = "email_confirmation"
	AuthCodePasswordReset     AuthCodeType = "password_reset"
)

// AuthCode is a stored one-time code. The six-digit plaintext is never
// persisted, only its SHA-256 hex digest. A code is valid while
// used = false and expires_at is in the future; lookups always pick the
// newest valid row for (user_id, code_type).
type AuthCode struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID    `gorm:"type:uuid;index;not null"`
	CodeHash  string       `gorm:"column:code_hash;not null"`
	CodeType  AuthCodeType `gorm:"column:code_type;not null"`
	ExpiresAt time.Time    `gorm:"column:expires_at;not null"`
	Used      bool         `gorm:"column:used;not null;default:false"`
	CreatedAt time.Time
}

func (AuthCode) TableName() string { return "auth_codes" }

func (c *AuthCode) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
