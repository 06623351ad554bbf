package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
)

type AuthCodeRepository struct {
	db *gorm.DB
}

func NewAuthCodeRepository(db *gorm.DB) *AuthCodeRepository {
	return &AuthCodeRepository{db: db}
}

func (r *AuthCodeRepository) WithTx(tx *gorm.DB) *AuthCodeRepository {
	return &AuthCodeRepository{db: tx}
}

func (r *AuthCodeRepository) Create(ctx context.Context, code *domain.AuthCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// FindValid returns the newest unused, unexpired code of the given type for
// a user, or gorm.ErrRecordNotFound.
func (r *AuthCodeRepository) FindValid(ctx context.Context, userID uuid.UUID, codeType domain.AuthCodeType) (*domain.AuthCode, error) {
	var code domain.AuthCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code_type = ? AND used = ? AND expires_at > ?",
			userID, codeType, false, time.Now()).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *AuthCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.AuthCode{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// InvalidateUnused marks every outstanding code of the given type used, so
// only the most recently issued code can succeed.
func (r *AuthCodeRepository) InvalidateUnused(ctx context.Context, userID uuid.UUID, codeType domain.AuthCodeType) error {
	return r.db.WithContext(ctx).
		Model(&domain.AuthCode{}).
		Where("user_id = ? AND code_type = ? AND used = ?", userID, codeType, false).
		Update("used", true).Error
}

// DeleteStale removes expired or used codes. Returns the number of rows
// deleted.
func (r *AuthCodeRepository) DeleteStale(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ? OR used = ?", time.Now(), true).
		Delete(&domain.AuthCode{})
	return result.RowsAffected, result.Error
}
