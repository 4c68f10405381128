package services

import (
	"context"
	"errors"
	"log"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Marketing errors
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEmptyTitle           = errors.New("title is required")
)

// MarketingService handles marketing announcements
type MarketingService struct {
	announcementRepo repositories.AnnouncementRepository
}

// NewMarketingService creates a new marketing service
func NewMarketingService(announcementRepo repositories.AnnouncementRepository) *MarketingService {
	return &MarketingService{announcementRepo: announcementRepo}
}

// AnnouncementInput represents announcement create/update input
type AnnouncementInput struct {
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	IsActive *bool      `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// ListVisible lists the announcements currently shown to customers
func (s *MarketingService) ListVisible(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcementRepo.ListVisible(ctx, time.Now())
}

// ListAll lists all announcements (admin view)
func (s *MarketingService) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	return s.announcementRepo.List(ctx)
}

// Create creates a new announcement
func (s *MarketingService) Create(ctx context.Context, input *AnnouncementInput) (*models.Announcement, error) {
	if input.Title == "" {
		return nil, ErrEmptyTitle
	}

	announcement := &models.Announcement{
		Title:    input.Title,
		Body:     input.Body,
		IsActive: true,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	log.Printf("✅ Announcement created: %s", announcement.Title)
	return announcement, nil
}

// Update updates an announcement
func (s *MarketingService) Update(ctx context.Context, id uint, input *AnnouncementInput) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if input.Title != "" {
		announcement.Title = input.Title
	}
	if input.Body != "" {
		announcement.Body = input.Body
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}
	announcement.StartsAt = input.StartsAt
	announcement.EndsAt = input.EndsAt

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Delete deletes an announcement
func (s *MarketingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return s.announcementRepo.Delete(ctx, id)
}
