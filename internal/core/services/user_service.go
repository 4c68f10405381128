package services

import (
	"context"
	"errors"
	"log"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
)

// UserService handles user management. Self-service profile updates
// and administrative role changes are deliberately separate
// operations: the profile path can never touch role, email, stamps or
// prize state.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfileInput represents a self-service profile update
type UpdateProfileInput struct {
	Name string `json:"name"`
}

// UpdateProfile updates the caller's own profile. Only the name is
// owner-editable.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
			"name": input.Name,
		}); err != nil {
			return nil, err
		}
		user.Name = input.Name
	}

	return user.ToResponse(), nil
}

// ListUsersOutput represents the admin user list
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// ListUsers lists users with pagination and search (admin)
func (s *UserService) ListUsers(ctx context.Context, offset, limit int, search string) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit, search)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// ChangeRole sets a user's role. This is an explicit administrative
// operation; admins cannot change their own role.
func (s *UserService) ChangeRole(ctx context.Context, adminID, userID, role string) (*models.UserResponse, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if adminID == userID {
		return nil, ErrCannotChangeOwnRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"role": role,
	}); err != nil {
		return nil, err
	}
	user.Role = role

	log.Printf("✅ Role of %s changed to %s by %s", user.Email, role, adminID)
	return user.ToResponse(), nil
}

// DeleteUser soft deletes a user (admin)
func (s *UserService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
