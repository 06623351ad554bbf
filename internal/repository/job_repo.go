package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) GetByID(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, userID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) ExistsForUser(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *JobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).
		Model(job).
		Select("title", "payment_type", "number_of_payouts", "payout_amount", "hourly_rate").
		Updates(job).Error
}

func (r *JobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, userID).
		Delete(&domain.Job{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
