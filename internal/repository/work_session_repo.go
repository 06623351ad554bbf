package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
)

type WorkSessionRepository struct {
	db *gorm.DB
}

func NewWorkSessionRepository(db *gorm.DB) *WorkSessionRepository {
	return &WorkSessionRepository{db: db}
}

func (r *WorkSessionRepository) Create(ctx context.Context, session *domain.WorkSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *WorkSessionRepository) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.WorkSession, error) {
	var session domain.WorkSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActive returns the user's running session, or gorm.ErrRecordNotFound.
// At most one session per user has is_running set.
func (r *WorkSessionRepository) FindActive(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	var session domain.WorkSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_running = ?", userID, true).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *WorkSessionRepository) ListByJob(ctx context.Context, userID, jobID uuid.UUID) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *WorkSessionRepository) Update(ctx context.Context, session *domain.WorkSession) error {
	return r.db.WithContext(ctx).
		Model(session).
		Select("start_time", "end_time", "is_running", "accumulated_paused_duration",
			"paused_at", "time_reported").
		Updates(session).Error
}

func (r *WorkSessionRepository) Delete(ctx context.Context, userID, sessionID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&domain.WorkSession{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
