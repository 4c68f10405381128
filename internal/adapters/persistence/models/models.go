package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// Roles
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// ValidRole checks if a role string is one of the known roles
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleEmployee || role == RoleAdmin
}

// RoleHome returns the landing route for a role after login.
// Unknown roles fall back to the customer dashboard.
func RoleHome(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployee:
		return "/employee/scanner"
	default:
		return "/dashboard"
	}
}

// Identity represents the identities table. It is the credential store
// of the app and deliberately separate from User: registering creates
// an Identity only, the matching User row is created lazily on first
// login.
type Identity struct {
	SubjectID    string    `gorm:"primaryKey;size:36" json:"subject_id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100" json:"name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// User represents the users table: the app-side profile and loyalty
// state per identity, keyed by the identity's subject id.
type User struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Role          string         `gorm:"size:20;default:'customer'" json:"role"`
	Name          string         `gorm:"size:100" json:"name"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	LoyaltyStamps int            `gorm:"not null;default:0" json:"loyalty_stamps"`
	ActivePrize   *string        `gorm:"size:200" json:"active_prize"`
	LastWheelSpin *time.Time     `json:"last_wheel_spin"`
	QRCode        string         `gorm:"uniqueIndex;size:36;not null" json:"qr_code"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            string     `json:"id"`
	Role          string     `json:"role"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	LoyaltyStamps int        `json:"loyalty_stamps"`
	ActivePrize   *string    `json:"active_prize,omitempty"`
	LastWheelSpin *time.Time `json:"last_wheel_spin,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Role:          u.Role,
		Name:          u.Name,
		Email:         u.Email,
		LoyaltyStamps: u.LoyaltyStamps,
		ActivePrize:   u.ActivePrize,
		LastWheelSpin: u.LastWheelSpin,
		CreatedAt:     u.CreatedAt,
	}
}

// SessionRecord represents the session_records table. One row per
// issued session token (stored hashed). Sessions have a fixed lifetime
// and are never renewed in place; logout revokes the row.
type SessionRecord struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

func (s *SessionRecord) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *SessionRecord) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&Identity{},
		&User{},
		&SessionRecord{},
		// Promotion & loyalty
		&PromotionConfig{},
		&WheelSegment{},
		&StampEvent{},
		// Shop
		&Category{},
		&Product{},
		&Order{},
		&OrderItem{},
		// Marketing
		&Announcement{},
	)
}
