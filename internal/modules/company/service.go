package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
	"giglog/internal/pkg/validator"
	"giglog/internal/repository"
)

type Service struct {
	companies *repository.CompanyRepository
}

func NewService(companies *repository.CompanyRepository) *Service {
	return &Service{companies: companies}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CompanyRequest) (*domain.Company, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	company := &domain.Company{
		UserID:                  userID,
		Name:                    strings.TrimSpace(req.Name),
		RequiresTaxWithholdings: req.RequiresTaxWithholdings,
		TaxWithholdingRate:      req.TaxWithholdingRate,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Get returns a company with its payment and worked-time aggregates and the
// first page of recent jobs and payments.
func (s *Service) Get(ctx context.Context, userID, companyID uuid.UUID, page int) (*Detail, error) {
	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	totalPaid, err := s.companies.TotalPaid(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	workedSeconds, err := s.companies.TotalWorkedSeconds(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.companies.RecentJobs(ctx, userID, companyID, page)
	if err != nil {
		return nil, err
	}
	payments, err := s.companies.RecentPayments(ctx, userID, companyID, page)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Company:            company,
		TotalPaid:          totalPaid,
		TotalWorkedSeconds: workedSeconds,
		RecentJobs:         jobs,
		RecentPayments:     payments,
	}, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Company, error) {
	return s.companies.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, companyID uuid.UUID, req CompanyRequest) (*domain.Company, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	company.Name = strings.TrimSpace(req.Name)
	company.RequiresTaxWithholdings = req.RequiresTaxWithholdings
	company.TaxWithholdingRate = req.TaxWithholdingRate
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	deleted, err := s.companies.Delete(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func validateRequest(req *CompanyRequest) error {
	if fields := validator.Validate(req); fields != nil {
		for field, tag := range fields {
			return fmt.Errorf("%w: %s failed %s validation", ErrValidation, field, tag)
		}
	}
	return req.Validate()
}
