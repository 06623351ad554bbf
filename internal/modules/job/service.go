package job

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
	jobs      *repository.JobRepository
	companies *repository.CompanyRepository
}

func NewService(jobs *repository.JobRepository, companies *repository.CompanyRepository) *Service {
	return &Service{jobs: jobs, companies: companies}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req JobRequest) (*domain.Job, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, userID, req.CompanyID); err != nil {
		return nil, err
	}

	job := &domain.Job{
		UserID:          userID,
		CompanyID:       req.CompanyID,
		Title:           strings.TrimSpace(req.Title),
		PaymentType:     req.PaymentType,
		NumberOfPayouts: req.NumberOfPayouts,
		PayoutAmount:    req.PayoutAmount,
		HourlyRate:      req.HourlyRate,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) Get(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Job, error) {
	return s.jobs.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, jobID uuid.UUID, req JobRequest) (*domain.Job, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A job stays with its company; only the terms can change.
	job.Title = strings.TrimSpace(req.Title)
	job.PaymentType = req.PaymentType
	job.NumberOfPayouts = req.NumberOfPayouts
	job.PayoutAmount = req.PayoutAmount
	job.HourlyRate = req.HourlyRate
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	deleted, err := s.jobs.Delete(ctx, userID, jobID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) checkCompany(ctx context.Context, userID, companyID uuid.UUID) error {
	_, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	return nil
}

func validateRequest(req *JobRequest) error {
	if fields := validator.Validate(req); fields != nil {
		for field, tag := range fields {
			return fmt.Errorf("%w: %s failed %s validation", ErrValidation, field, tag)
		}
	}
	return req.Validate()
}
