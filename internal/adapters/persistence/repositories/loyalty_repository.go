package repositories

import (
	"context"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// stampEventRepository implements StampEventRepository interface
type stampEventRepository struct {
	db *gorm.DB
}

// NewStampEventRepository creates a new stamp event repository
func NewStampEventRepository(db *gorm.DB) StampEventRepository {
	return &stampEventRepository{db: db}
}

// Create creates a new stamp event
func (r *stampEventRepository) Create(ctx context.Context, event *models.StampEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByUser lists a user's stamp events, newest first
func (r *stampEventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.StampEvent, error) {
	var events []*models.StampEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
