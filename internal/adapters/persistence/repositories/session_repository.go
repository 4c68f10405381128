package repositories

import (
	"context"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session record
func (r *sessionRepository) Create(ctx context.Context, record *models.SessionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByTokenHash gets a session record by token hash
func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RevokeByTokenHash revokes a session record by token hash
func (r *sessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionRecord{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", &now).Error
}

// RevokeAllByUserID revokes all session records for a user
func (r *sessionRepository) RevokeAllByUserID(ctx context.Context, userID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.SessionRecord{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}

// DeleteExpired hard deletes expired and revoked session records and
// returns how many rows were removed
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&models.SessionRecord{})
	return result.RowsAffected, result.Error
}
