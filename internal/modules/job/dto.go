package job

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"giglog/internal/domain"
)

type JobRequest struct {
	CompanyID       uuid.UUID             `json:"company_id" validate:"required"`
	Title           string                `json:"title" validate:"required"`
	PaymentType     domain.JobPaymentType `json:"payment_type" validate:"required"`
	NumberOfPayouts *int                  `json:"number_of_payouts"`
	PayoutAmount    *decimal.Decimal      `json:"payout_amount"`
	HourlyRate      *decimal.Decimal      `json:"hourly_rate"`
}

// Validate enforces that exactly the fields for the chosen payment type are
// present: hourly jobs carry a rate, payout jobs carry a count and amount.
func (r *JobRequest) Validate() error {
	switch r.PaymentType {
	case domain.JobPaymentHourly:
		if r.HourlyRate == nil || !r.HourlyRate.IsPositive() {
			return fmt.Errorf("%w: hourly_rate must be a positive amount", ErrValidation)
		}
		if r.NumberOfPayouts != nil || r.PayoutAmount != nil {
			return fmt.Errorf("%w: payout fields are not allowed on hourly jobs", ErrValidation)
		}
	case domain.JobPaymentPayouts:
		if r.NumberOfPayouts == nil || *r.NumberOfPayouts <= 0 {
			return fmt.Errorf("%w: number_of_payouts must be a positive count", ErrValidation)
		}
		if r.PayoutAmount == nil || !r.PayoutAmount.IsPositive() {
			return fmt.Errorf("%w: payout_amount must be a positive amount", ErrValidation)
		}
		if r.HourlyRate != nil {
			return fmt.Errorf("%w: hourly_rate is not allowed on payout jobs", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: payment_type must be hourly or payouts", ErrValidation)
	}
	return nil
}
