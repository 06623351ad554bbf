package company

import (
	"fmt"

	"github.com/shopspring/decimal"

	"giglog/internal/domain"
)

type CompanyRequest struct {
	Name                    string           `json:"name" validate:"required"`
	RequiresTaxWithholdings bool             `json:"requires_tax_withholdings"`
	TaxWithholdingRate      *decimal.Decimal `json:"tax_withholding_rate"`
}

// Validate enforces the cross-field rules the struct tags cannot express.
func (r *CompanyRequest) Validate() error {
	if r.RequiresTaxWithholdings {
		if r.TaxWithholdingRate == nil {
			return fmt.Errorf("%w: tax_withholding_rate is required when requires_tax_withholdings is set", ErrValidation)
		}
		if r.TaxWithholdingRate.IsNegative() || r.TaxWithholdingRate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: tax_withholding_rate must be between 0 and 100", ErrValidation)
		}
	} else if r.TaxWithholdingRate != nil {
		return fmt.Errorf("%w: tax_withholding_rate requires requires_tax_withholdings", ErrValidation)
	}
	return nil
}

// Detail is a company plus the aggregates shown on its detail page.
type Detail struct {
	Company            *domain.Company  `json:"company"`
	TotalPaid          decimal.Decimal  `json:"total_paid"`
	TotalWorkedSeconds int64            `json:"total_worked_seconds"`
	RecentJobs         []domain.Job     `json:"recent_jobs"`
	RecentPayments     []domain.Payment `json:"recent_payments"`
}
