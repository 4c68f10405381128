package services

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"
)

// Promotion errors
var (
	ErrPromotionDisabled = errors.New("promotion is not active")
	ErrPrizeOutstanding  = errors.New("active prize must be redeemed first")
	ErrSpinTooSoon       = errors.New("spin not allowed yet")
	ErrNotCustomer       = errors.New("only customers can spin the wheel")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrTooFewSegments    = errors.New("wheel needs at least two segments")
	ErrInvalidSegment    = errors.New("invalid wheel segment")
)

// Cooldown thresholds in hours. Monthly is a fixed 30-day
// approximation, not calendar-month aware.
const (
	cooldownDailyHours   = 24
	cooldownWeeklyHours  = 168
	cooldownMonthlyHours = 720
)

// PromotionService handles the wheel-of-fortune promotion
type PromotionService struct {
	userRepo   repositories.UserRepository
	promoRepo  repositories.PromotionRepository
	stampRepo  repositories.StampEventRepository
	randIntn   func(n int) int
	timeSource func() time.Time
}

// NewPromotionService creates a new promotion service
func NewPromotionService(
	userRepo repositories.UserRepository,
	promoRepo repositories.PromotionRepository,
	stampRepo repositories.StampEventRepository,
) *PromotionService {
	return &PromotionService{
		userRepo:   userRepo,
		promoRepo:  promoRepo,
		stampRepo:  stampRepo,
		randIntn:   rand.Intn,
		timeSource: time.Now,
	}
}

// CooldownHours returns the minimum elapsed hours between spins for a
// schedule
func CooldownHours(schedule string) float64 {
	switch schedule {
	case models.ScheduleWeekly:
		return cooldownWeeklyHours
	case models.ScheduleMonthly:
		return cooldownMonthlyHours
	default:
		return cooldownDailyHours
	}
}

// CanUserPlay decides whether a user may spin the wheel at time now.
// Developer mode bypasses the cooldown only; it does not bypass the
// active-prize guard in Spin.
func CanUserPlay(user *models.User, cfg *models.PromotionConfig, now time.Time) bool {
	if !cfg.IsActive {
		return false
	}
	if cfg.DeveloperMode {
		return true
	}
	if user.LastWheelSpin == nil {
		return true
	}
	elapsed := now.Sub(*user.LastWheelSpin).Hours()
	return elapsed >= CooldownHours(cfg.Schedule)
}

// SpinResult represents the outcome of a spin. SegmentIndex is
// returned so the client animation can land on the chosen segment.
type SpinResult struct {
	SegmentIndex int     `json:"segment_index"`
	SegmentText  string  `json:"segment_text"`
	Prize        *string `json:"prize,omitempty"`
}

// Spin draws a random wheel segment for a customer and records the
// outcome in a single update of the user row.
//
// The active-prize check and the final write are not wrapped in a
// transaction; two overlapping spins from the same user could both
// pass the guard.
func (s *PromotionService) Spin(ctx context.Context, userID string) (*SpinResult, error) {
	// 1. Load the user; only customers play
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCustomer {
		return nil, ErrNotCustomer
	}

	// 2. Hard precondition, checked before any randomness
	if user.ActivePrize != nil {
		return nil, ErrPrizeOutstanding
	}

	// 3. Eligibility against the wheel configuration
	cfg, err := s.promoRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, ErrPromotionDisabled
	}
	now := s.timeSource()
	if !CanUserPlay(user, cfg, now) {
		return nil, ErrSpinTooSoon
	}
	if len(cfg.Segments) < 2 {
		// Seeding and UpdateConfig both enforce the minimum, so an
		// under-populated active wheel means the data was edited directly
		log.Printf("⚠️ Wheel is active with %d segment(s), refusing to spin", len(cfg.Segments))
		return nil, ErrTooFewSegments
	}

	// 4. Draw a uniform segment
	idx := s.randIntn(len(cfg.Segments))
	segment := cfg.Segments[idx]

	// 5. One write: spin timestamp always, prize only on a win
	fields := map[string]interface{}{
		"last_wheel_spin": now,
	}
	result := &SpinResult{
		SegmentIndex: idx,
		SegmentText:  segment.Text,
	}
	if segment.Type == models.SegmentWin {
		fields["active_prize"] = segment.Text
		result.Prize = &segment.Text
	}
	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		return nil, err
	}

	if result.Prize != nil {
		// Wins show up in the card history; the prize itself is handed
		// out at the counter later
		event := &models.StampEvent{
			UserID:      user.ID,
			PerformedBy: user.ID,
			Reason:      models.StampReasonWin,
			Note:        segment.Text,
		}
		if err := s.stampRepo.Create(ctx, event); err != nil {
			log.Printf("⚠️ Failed to record wheel win for %s: %v", user.ID, err)
		}
		log.Printf("🎉 Wheel win for %s: %s", user.Email, segment.Text)
	}

	return result, nil
}

// WheelStatus is what a customer sees before spinning
type WheelStatus struct {
	IsActive bool                  `json:"is_active"`
	CanPlay  bool                  `json:"can_play"`
	HasPrize bool                  `json:"has_prize"`
	Prize    *string               `json:"prize,omitempty"`
	Segments []models.WheelSegment `json:"segments"`
}

// Status returns the wheel view for a user
func (s *PromotionService) Status(ctx context.Context, userID string) (*WheelStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.promoRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &WheelStatus{
		IsActive: cfg.IsActive,
		CanPlay:  CanUserPlay(user, cfg, s.timeSource()) && user.ActivePrize == nil,
		HasPrize: user.ActivePrize != nil,
		Prize:    user.ActivePrize,
		Segments: cfg.Segments,
	}, nil
}

// GetConfig returns the full wheel configuration (admin view)
func (s *PromotionService) GetConfig(ctx context.Context) (*models.PromotionConfig, error) {
	return s.promoRepo.Get(ctx)
}

// UpdateConfigInput represents an admin config update
type UpdateConfigInput struct {
	IsActive      bool                  `json:"is_active"`
	Schedule      string                `json:"schedule"`
	DeveloperMode bool                  `json:"developer_mode"`
	Segments      []models.WheelSegment `json:"segments"`
}

// UpdateConfig validates and replaces the wheel configuration
func (s *PromotionService) UpdateConfig(ctx context.Context, input *UpdateConfigInput) (*models.PromotionConfig, error) {
	if !models.ValidSchedule(input.Schedule) {
		return nil, ErrInvalidSchedule
	}
	if len(input.Segments) < 2 {
		return nil, ErrTooFewSegments
	}
	for i := range input.Segments {
		seg := &input.Segments[i]
		if seg.Text == "" {
			return nil, ErrInvalidSegment
		}
		if seg.Type != models.SegmentWin && seg.Type != models.SegmentLose {
			return nil, ErrInvalidSegment
		}
		seg.Position = i
	}

	cfg := &models.PromotionConfig{
		ID:            models.PromotionConfigID,
		IsActive:      input.IsActive,
		Schedule:      input.Schedule,
		DeveloperMode: input.DeveloperMode,
		Segments:      input.Segments,
	}
	if err := s.promoRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	log.Printf("✅ Promotion config updated [active=%v schedule=%s segments=%d]",
		cfg.IsActive, cfg.Schedule, len(cfg.Segments))

	return cfg, nil
}
