package services

import (
	"context"
	"errors"
	"log"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"
	"feinkost-backend/internal/config"
	"feinkost-backend/internal/pkg/password"
	"feinkost-backend/internal/pkg/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	// ErrInvalidCredentials covers unknown email and wrong password
	// alike, so a caller cannot probe which accounts exist
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// Session is the per-request view of an authenticated user, rebuilt
// from the session cookie on every request.
type Session struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	LoyaltyStamps int        `json:"loyalty_stamps"`
	ActivePrize   *string    `json:"active_prize,omitempty"`
	LastWheelSpin *time.Time `json:"last_wheel_spin,omitempty"`
	// Degraded marks a session built without its user record because
	// the database was unreachable
	Degraded bool `json:"-"`
}

// PlaceholderName is used when a user record has no name
const PlaceholderName = "Kunde"

// AuthService handles registration, session issuance and session
// reading
type AuthService struct {
	identityRepo repositories.IdentityRepository
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	identityRepo repositories.IdentityRepository,
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		cfg:          cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult represents a successful login
type LoginResult struct {
	User       *models.UserResponse `json:"user"`
	Token      string               `json:"-"`
	RedirectTo string               `json:"redirect_to"`
}

// Register creates a new identity. The matching user record is created
// lazily on first login, not here.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) error {
	if !password.Validate(input.Password) {
		return ErrWeakPassword
	}

	exists, err := s.identityRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	identity := &models.Identity{
		SubjectID:    uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return err
	}

	log.Printf("✅ Identity registered: %s", identity.Email)
	return nil
}

// Login verifies a credential and issues a session.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	// 1. Verify the credential
	identity, err := s.identityRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(input.Password, identity.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 2. Mint the session token (fixed lifetime, no renewal)
	tokenID := uuid.New().String()
	token, err := session.Generate(identity.SubjectID, tokenID, s.cfg.Session.Secret)
	if err != nil {
		return nil, err
	}

	// 3. Ensure the user record exists. FirstOrCreate keeps existing
	// rows untouched, so a once-assigned role survives every login.
	user, err := s.userRepo.FirstOrCreate(ctx, &models.User{
		ID:     identity.SubjectID,
		Role:   models.RoleCustomer,
		Name:   identity.Name,
		Email:  identity.Email,
		QRCode: uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}

	// 4. Persist the session record for logout and expiry purging
	record := &models.SessionRecord{
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: session.ExpiryTime(),
	}
	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s [%s]", user.Email, user.Role)

	return &LoginResult{
		User:       user.ToResponse(),
		Token:      token,
		RedirectTo: models.RoleHome(user.Role),
	}, nil
}

// ReadSession rebuilds a session from a token. It returns nil for
// anonymous requests (missing, invalid, expired or revoked tokens) and
// never returns an error: if the user record cannot be read because
// the store is down, the session degrades to the token's subject id
// with the default role instead of locking the user out.
func (s *AuthService) ReadSession(ctx context.Context, token string) *Session {
	if token == "" {
		return nil
	}

	claims, err := session.Validate(token, s.cfg.Session.Secret)
	if err != nil {
		return nil
	}

	// Revocation check: a missing record means the token was not
	// issued by us or was already purged. A store failure here falls
	// through to the degraded path below.
	record, err := s.sessionRepo.GetByTokenHash(ctx, password.HashToken(token))
	if err == nil {
		if record.IsRevoked() || record.IsExpired() {
			return nil
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// User deleted; the session no longer maps to anyone
			return nil
		}
		log.Printf("⚠️ Session degraded for %s: user record unavailable: %v", claims.Subject, err)
		return &Session{
			UserID:   claims.Subject,
			Name:     PlaceholderName,
			Role:     models.RoleCustomer,
			Degraded: true,
		}
	}

	name := user.Name
	if name == "" {
		name = PlaceholderName
	}

	return &Session{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          name,
		Role:          user.Role,
		LoyaltyStamps: user.LoyaltyStamps,
		ActivePrize:   user.ActivePrize,
		LastWheelSpin: user.LastWheelSpin,
	}
}

// Logout revokes the session behind a token. Unknown tokens are a
// no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.RevokeByTokenHash(ctx, password.HashToken(token)); err != nil {
		return err
	}
	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes every session of a user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for user: %s", userID)
	return nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
