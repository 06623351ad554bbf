package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"giglog/internal/domain"
)

const summaryPageSize = 10

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, userID, companyID uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", companyID, userID).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).
		Model(company).
		Select("name", "requires_tax_withholdings", "tax_withholding_rate").
		Updates(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", companyID, userID).
		Delete(&domain.Company{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// TotalPaid sums all payment totals recorded against a company.
func (r *CompanyRepository) TotalPaid(ctx context.Context, userID, companyID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Select("SUM(total)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// TotalWorkedSeconds sums completed work session time across a company's
// jobs, net of paused time.
func (r *CompanyRepository) TotalWorkedSeconds(ctx context.Context, userID, companyID uuid.UUID) (int64, error) {
	var sessions []domain.WorkSession
	err := r.db.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = work_sessions.job_id").
		Where("work_sessions.user_id = ? AND jobs.company_id = ? AND work_sessions.end_time IS NOT NULL",
			userID, companyID).
		Find(&sessions).Error
	if err != nil {
		return 0, err
	}
	var total int64
	for i := range sessions {
		total += sessions[i].WorkedSeconds(*sessions[i].EndTime)
	}
	return total, nil
}

// RecentJobs returns one page of the company's jobs, newest first.
func (r *CompanyRepository) RecentJobs(ctx context.Context, userID, companyID uuid.UUID, page int) ([]domain.Job, error) {
	if page < 1 {
		page = 1
	}
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Order("created_at DESC").
		Limit(summaryPageSize).
		Offset((page - 1) * summaryPageSize).
		Find(&jobs).Error
	return jobs, err
}

// RecentPayments returns one page of the company's payments, newest first.
func (r *CompanyRepository) RecentPayments(ctx context.Context, userID, companyID uuid.UUID, page int) ([]domain.Payment, error) {
	if page < 1 {
		page = 1
	}
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Order("created_at DESC").
		Limit(summaryPageSize).
		Offset((page - 1) * summaryPageSize).
		Find(&payments).Error
	return payments, err
}
