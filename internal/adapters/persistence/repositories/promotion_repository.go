package repositories

import (
	"context"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// promotionRepository implements PromotionRepository interface
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

// Get loads the singleton promotion config with its segments in wheel
// order
func (r *promotionRepository) Get(ctx context.Context) (*models.PromotionConfig, error) {
	var cfg models.PromotionConfig
	err := r.db.WithContext(ctx).
		Preload("Segments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&cfg, models.PromotionConfigID).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save persists the config row and replaces its segments wholesale
// inside a transaction
func (r *promotionRepository) Save(ctx context.Context, cfg *models.PromotionConfig) error {
	cfg.ID = models.PromotionConfigID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		segments := cfg.Segments
		cfg.Segments = nil

		if err := tx.Save(cfg).Error; err != nil {
			return err
		}
		if err := tx.Where("config_id = ?", cfg.ID).Delete(&models.WheelSegment{}).Error; err != nil {
			return err
		}
		for i := range segments {
			segments[i].ID = 0
			segments[i].ConfigID = cfg.ID
		}
		if err := tx.Create(&segments).Error; err != nil {
			return err
		}

		cfg.Segments = segments
		return nil
	})
}
