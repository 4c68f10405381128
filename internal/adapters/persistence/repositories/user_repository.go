package repositories

import (
	"context"

	"feinkost-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByQRCode gets a user by loyalty card QR code
func (r *userRepository) GetByQRCode(ctx context.Context, qrCode string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstOrCreate returns the user for user.ID or inserts the given row.
// An existing row is returned untouched. The condition must be a struct
// so GORM copies the ID into the record on the create path; a raw-SQL
// condition would insert a row with an empty primary key.
func (r *userRepository) FirstOrCreate(ctx context.Context, user *models.User) (*models.User, error) {
	var result models.User
	err := r.db.WithContext(ctx).
		Where(models.User{ID: user.ID}).
		Attrs(map[string]interface{}{
			"role":           user.Role,
			"name":           user.Name,
			"email":          user.Email,
			"loyalty_stamps": user.LoyaltyStamps,
			"qr_code":        user.QRCode,
		}).
		FirstOrCreate(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateFields applies a partial update to a single user row
func (r *userRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// List lists users with pagination and optional name/email search
func (r *userRepository) List(ctx context.Context, offset, limit int, search string) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Delete soft deletes a user
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}
