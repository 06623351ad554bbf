package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"giglog/internal/domain"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) WithTx(tx *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: tx}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// ConsumeActive atomically revokes the session identified by tokenHash,
// provided it belongs to userID and is still live. The conditional update
// guarantees a session can be consumed at most once even under concurrent
// requests; the return value reports whether this call won the race.
func (r *RefreshTokenRepository) ConsumeActive(ctx context.Context, userID uuid.UUID, tokenHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("user_id = ? AND token_hash = ? AND revoked = ? AND expires_at > ?",
			userID, tokenHash, false, time.Now()).
		Update("revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Revoke marks the session with tokenHash revoked. Revoking an unknown or
// already-revoked hash is a no-op.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RevokeAll revokes every live session for a user.
func (r *RefreshTokenRepository) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// DeleteStale removes tokens that can never be used again: expired or
// revoked. Returns the number of rows deleted.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ? OR revoked = ?", time.Now(), true).
		Delete(&domain.RefreshToken{})
	return result.RowsAffected, result.Error
}
