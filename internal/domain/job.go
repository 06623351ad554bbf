package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobPaymentType defines how a job compensates the worker.
type JobPaymentType string

const (
	// JobPaymentHourly pays based on tracked hours at an hourly rate.
	JobPaymentHourly JobPaymentType = "hourly"
	// JobPaymentPayouts pays fixed amounts regardless of time spent.
	JobPaymentPayouts JobPaymentType = "payouts"
)

// Job is a gig the user performs for a company. Hourly jobs carry an hourly
// rate; payout jobs carry a payout count and amount. The two field sets are
// mutually exclusive.
type Job struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	CompanyID       uuid.UUID        `gorm:"type:uuid;index;not null" json:"company_id"`
	Title           string           `gorm:"not null" json:"title"`
	PaymentType     JobPaymentType   `gorm:"column:payment_type;not null" json:"payment_type"`
	NumberOfPayouts *int             `gorm:"column:number_of_payouts" json:"number_of_payouts"`
	PayoutAmount    *decimal.Decimal `gorm:"column:payout_amount;type:decimal(12,2)" json:"payout_amount"`
	HourlyRate      *decimal.Decimal `gorm:"column:hourly_rate;type:decimal(12,2)" json:"hourly_rate"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
