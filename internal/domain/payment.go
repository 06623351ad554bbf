package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutType is the method by which a payment is received.
type PayoutType string

const (
	PayoutPaypal        PayoutType = "paypal"
	PayoutCash          PayoutType = "cash"
	PayoutCheck         PayoutType = "check"
	PayoutZelle         PayoutType = "zelle"
	PayoutVenmo         PayoutType = "venmo"
	PayoutDirectDeposit PayoutType = "direct_deposit"
)

// SupportsTransfer reports whether the payout method involves a separate
// transfer step to the user's bank account.
func (p PayoutType) SupportsTransfer() bool {
	return p == PayoutPaypal || p == PayoutVenmo || p == PayoutZelle
}

// Valid reports whether the value is one of the known payout methods.
func (p PayoutType) Valid() bool {
	switch p {
	case PayoutPaypal, PayoutCash, PayoutCheck, PayoutZelle, PayoutVenmo, PayoutDirectDeposit:
		return true
	}
	return false
}

// Payment is money received (or expected) from a company for work performed.
type Payment struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	CompanyID              uuid.UUID       `gorm:"type:uuid;index;not null" json:"company_id"`
	Total                  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PayoutType             PayoutType      `gorm:"column:payout_type;not null" json:"payout_type"`
	ExpectedPayoutDate     *time.Time      `gorm:"column:expected_payout_date" json:"expected_payout_date"`
	ExpectedTransferDate   *time.Time      `gorm:"column:expected_transfer_date" json:"expected_transfer_date"`
	TransferInitiated      bool            `gorm:"column:transfer_initiated;not null;default:false" json:"transfer_initiated"`
	PaymentReceived        bool            `gorm:"column:payment_received;not null;default:false" json:"payment_received"`
	TransferReceived       bool            `gorm:"column:transfer_received;not null;default:false" json:"transfer_received"`
	TaxWithholdingsCovered bool            `gorm:"column:tax_withholdings_covered;not null;default:false" json:"tax_withholdings_covered"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
