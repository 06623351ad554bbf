package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company is an employer or client that pays the owning user for gigs.
type Company struct {
	ID                      uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                  uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	Name                    string           `gorm:"not null" json:"name"`
	RequiresTaxWithholdings bool             `gorm:"column:requires_tax_withholdings;not null;default:false" json:"requires_tax_withholdings"`
	TaxWithholdingRate      *decimal.Decimal `gorm:"column:tax_withholding_rate;type:decimal(5,2)" json:"tax_withholding_rate"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
