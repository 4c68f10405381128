package repositories

import (
	"context"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
)

// IdentityRepository defines identity (credential) repository interface
type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByQRCode(ctx context.Context, qrCode string) (*models.User, error)
	// FirstOrCreate returns the existing user for user.ID or inserts
	// the given row. Existing rows are never modified.
	FirstOrCreate(ctx context.Context, user *models.User) (*models.User, error)
	// UpdateFields applies a partial update to a single user row
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	List(ctx context.Context, offset, limit int, search string) ([]*models.User, int64, error)
	Delete(ctx context.Context, id string) error
}

// SessionRepository defines session record repository interface
type SessionRepository interface {
	Create(ctx context.Context, record *models.SessionRecord) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.SessionRecord, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PromotionRepository defines promotion config repository interface
type PromotionRepository interface {
	Get(ctx context.Context) (*models.PromotionConfig, error)
	// Save persists the config and replaces its segments wholesale
	Save(ctx context.Context, cfg *models.PromotionConfig) error
}

// StampEventRepository defines stamp event repository interface
type StampEventRepository interface {
	Create(ctx context.Context, event *models.StampEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.StampEvent, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
	CountProducts(ctx context.Context, categoryID uint) (int64, error)
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetActiveByIDs(ctx context.Context, ids []uint) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.Product, error)
}

// OrderRepository defines order repository interface
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// AnnouncementRepository defines announcement repository interface
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Announcement, error)
	ListVisible(ctx context.Context, now time.Time) ([]*models.Announcement, error)
}
