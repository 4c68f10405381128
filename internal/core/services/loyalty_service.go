package services

import (
	"context"
	"errors"
	"log"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Loyalty errors
var (
	ErrCardNotFound    = errors.New("loyalty card not found")
	ErrNotACustomer    = errors.New("loyalty card belongs to a non-customer account")
	ErrInvalidStamps   = errors.New("stamp count must be positive")
	ErrNotEnoughStamps = errors.New("not enough stamps")
	ErrNoActivePrize   = errors.New("no active prize to redeem")
)

// LoyaltyService handles stamp cards and prize redemption. All
// mutations are staff-triggered via a scanned customer QR code and
// leave an audit row.
type LoyaltyService struct {
	userRepo  repositories.UserRepository
	stampRepo repositories.StampEventRepository
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(
	userRepo repositories.UserRepository,
	stampRepo repositories.StampEventRepository,
) *LoyaltyService {
	return &LoyaltyService{
		userRepo:  userRepo,
		stampRepo: stampRepo,
	}
}

// CardView is the customer's view of their loyalty card
type CardView struct {
	QRCode        string               `json:"qr_code"`
	LoyaltyStamps int                  `json:"loyalty_stamps"`
	ActivePrize   *string              `json:"active_prize,omitempty"`
	History       []*models.StampEvent `json:"history"`
}

// GetCard returns a customer's loyalty card with recent history
func (s *LoyaltyService) GetCard(ctx context.Context, userID string) (*CardView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.stampRepo.ListByUser(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	return &CardView{
		QRCode:        user.QRCode,
		LoyaltyStamps: user.LoyaltyStamps,
		ActivePrize:   user.ActivePrize,
		History:       history,
	}, nil
}

// resolveCard maps a scanned QR code to the customer holding it
func (s *LoyaltyService) resolveCard(ctx context.Context, qrCode string) (*models.User, error) {
	user, err := s.userRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleCustomer {
		return nil, ErrNotACustomer
	}
	return user, nil
}

// AwardStamps adds stamps to a scanned card
func (s *LoyaltyService) AwardStamps(ctx context.Context, staffID, qrCode string, count int) (*models.UserResponse, error) {
	if count < 1 {
		return nil, ErrInvalidStamps
	}

	user, err := s.resolveCard(ctx, qrCode)
	if err != nil {
		return nil, err
	}

	user.LoyaltyStamps += count
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"loyalty_stamps": user.LoyaltyStamps,
	}); err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, staffID, count, models.StampReasonScan, "")

	log.Printf("✅ %d stamp(s) awarded to %s by %s", count, user.Email, staffID)
	return user.ToResponse(), nil
}

// RedeemStamps removes stamps from a scanned card, e.g. when a full
// card is traded in. The counter never goes below zero.
func (s *LoyaltyService) RedeemStamps(ctx context.Context, staffID, qrCode string, count int) (*models.UserResponse, error) {
	if count < 1 {
		return nil, ErrInvalidStamps
	}

	user, err := s.resolveCard(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if user.LoyaltyStamps < count {
		return nil, ErrNotEnoughStamps
	}

	user.LoyaltyStamps -= count
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"loyalty_stamps": user.LoyaltyStamps,
	}); err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, staffID, -count, models.StampReasonRedeem, "")

	log.Printf("✅ %d stamp(s) redeemed from %s by %s", count, user.Email, staffID)
	return user.ToResponse(), nil
}

// RedeemPrize hands out the customer's outstanding wheel prize and
// clears it. This is the only way an active prize goes away.
func (s *LoyaltyService) RedeemPrize(ctx context.Context, staffID, qrCode string) (*models.UserResponse, error) {
	user, err := s.resolveCard(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if user.ActivePrize == nil {
		return nil, ErrNoActivePrize
	}

	prize := *user.ActivePrize
	user.ActivePrize = nil
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"active_prize": nil,
	}); err != nil {
		return nil, err
	}

	s.audit(ctx, user.ID, staffID, 0, models.StampReasonPrize, prize)

	log.Printf("✅ Prize redeemed for %s: %s", user.Email, prize)
	return user.ToResponse(), nil
}

// audit writes the stamp event; a failed audit write is logged but
// does not undo the already-applied mutation
func (s *LoyaltyService) audit(ctx context.Context, userID, staffID string, delta int, reason, note string) {
	event := &models.StampEvent{
		UserID:      userID,
		PerformedBy: staffID,
		Delta:       delta,
		Reason:      reason,
		Note:        note,
	}
	if err := s.stampRepo.Create(ctx, event); err != nil {
		log.Printf("⚠️ Failed to record stamp event for %s: %v", userID, err)
	}
}
