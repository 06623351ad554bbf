package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Email must be confirmed via a one-time code
// before the user can log in.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string    `gorm:"column:last_name;not null" json:"last_name"`
	Email          string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	EmailConfirmed bool      `gorm:"column:email_confirmed;not null;default:false" json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
