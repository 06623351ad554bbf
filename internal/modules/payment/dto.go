package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"giglog/internal/domain"
)

type PaymentRequest struct {
	CompanyID              uuid.UUID         `json:"company_id" validate:"required"`
	Total                  decimal.Decimal   `json:"total"`
	PayoutType             domain.PayoutType `json:"payout_type" validate:"required"`
	ExpectedPayoutDate     *time.Time        `json:"expected_payout_date"`
	ExpectedTransferDate   *time.Time        `json:"expected_transfer_date"`
	TransferInitiated      bool              `json:"transfer_initiated"`
	PaymentReceived        bool              `json:"payment_received"`
	TransferReceived       bool              `json:"transfer_received"`
	TaxWithholdingsCovered bool              `json:"tax_withholdings_covered"`
}

// Validate enforces the transfer state machine: transfer fields only exist
// for payout methods that move money through a separate transfer step, and
// the received/initiated flags can only progress in order.
func (r *PaymentRequest) Validate() error {
	if !r.Total.IsPositive() {
		return fmt.Errorf("%w: total must be a positive amount", ErrValidation)
	}
	if !r.PayoutType.Valid() {
		return fmt.Errorf("%w: unknown payout_type %q", ErrValidation, r.PayoutType)
	}

	if !r.PayoutType.SupportsTransfer() {
		if r.TransferInitiated || r.TransferReceived {
			return fmt.Errorf("%w: transfer flags are not allowed for %s payments", ErrValidation, r.PayoutType)
		}
		if r.ExpectedTransferDate != nil {
			return fmt.Errorf("%w: expected_transfer_date is not allowed for %s payments", ErrValidation, r.PayoutType)
		}
		return nil
	}

	if r.TransferInitiated && !r.PaymentReceived {
		return fmt.Errorf("%w: transfer_initiated requires payment_received", ErrValidation)
	}
	if r.TransferReceived && !r.TransferInitiated {
		return fmt.Errorf("%w: transfer_received requires transfer_initiated", ErrValidation)
	}
	if r.TransferInitiated && !r.TransferReceived && r.ExpectedTransferDate == nil {
		return fmt.Errorf("%w: expected_transfer_date is required while a transfer is pending", ErrValidation)
	}
	return nil
}
