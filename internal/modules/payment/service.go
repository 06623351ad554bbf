package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
	"giglog/internal/pkg/validator"
	"giglog/internal/repository"
)

type Service struct {
	payments  *repository.PaymentRepository
	companies *repository.CompanyRepository
}

func NewService(payments *repository.PaymentRepository, companies *repository.CompanyRepository) *Service {
	return &Service{payments: payments, companies: companies}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req PaymentRequest) (*domain.Payment, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, userID, req.CompanyID); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		UserID:                 userID,
		CompanyID:              req.CompanyID,
		Total:                  req.Total,
		PayoutType:             req.PayoutType,
		ExpectedPayoutDate:     req.ExpectedPayoutDate,
		ExpectedTransferDate:   req.ExpectedTransferDate,
		TransferInitiated:      req.TransferInitiated,
		PaymentReceived:        req.PaymentReceived,
		TransferReceived:       req.TransferReceived,
		TaxWithholdingsCovered: req.TaxWithholdingsCovered,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) Get(ctx context.Context, userID, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, userID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, paymentID uuid.UUID, req PaymentRequest) (*domain.Payment, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByID(ctx, userID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payment.Total = req.Total
	payment.PayoutType = req.PayoutType
	payment.ExpectedPayoutDate = req.ExpectedPayoutDate
	payment.ExpectedTransferDate = req.ExpectedTransferDate
	payment.TransferInitiated = req.TransferInitiated
	payment.PaymentReceived = req.PaymentReceived
	payment.TransferReceived = req.TransferReceived
	payment.TaxWithholdingsCovered = req.TaxWithholdingsCovered
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) Delete(ctx context.Context, userID, paymentID uuid.UUID) error {
	deleted, err := s.payments.Delete(ctx, userID, paymentID)
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

func validateRequest(req *PaymentRequest) error {
	if fields := validator.Validate(req); fields != nil {
		for field, tag := range fields {
			return fmt.Errorf("%w: %s failed %s validation", ErrValidation, field, tag)
		}
	}
	return req.Validate()
}
