package repositories

import (
	"context"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// identityRepository implements IdentityRepository interface
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

// Create creates a new identity
func (r *identityRepository) Create(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

// GetByEmail gets an identity by email
func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// ExistsByEmail checks if an identity with the email exists
func (r *identityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Identity{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
