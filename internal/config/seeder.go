package config

import (
	"errors"
	"fmt"
	"log"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders. Seeding is idempotent and never overwrites
// existing rows.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminAccount(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedPromotionConfig(); err != nil {
		return err
	}

	if err := s.seedCategories(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminAccount seeds the default admin identity and user record
// from ADMIN_EMAIL / ADMIN_PASSWORD. Without a password, no admin is
// created.
func (s *Seeder) seedAdminAccount() error {
	if s.cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD not set")
	}

	var count int64
	s.db.Model(&models.Identity{}).Where("email = ?", s.cfg.Admin.Email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	subjectID := uuid.New().String()
	identity := &models.Identity{
		SubjectID:    subjectID,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hash,
		Name:         s.cfg.Admin.Name,
	}
	if err := s.db.Create(identity).Error; err != nil {
		return err
	}

	admin := &models.User{
		ID:     subjectID,
		Role:   models.RoleAdmin,
		Name:   s.cfg.Admin.Name,
		Email:  s.cfg.Admin.Email,
		QRCode: uuid.New().String(),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("   Created admin account: %s", s.cfg.Admin.Email)
	return nil
}

// seedPromotionConfig seeds the singleton wheel configuration. The
// wheel starts inactive so it never goes live by accident.
func (s *Seeder) seedPromotionConfig() error {
	var existing models.PromotionConfig
	err := s.db.First(&existing, models.PromotionConfigID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cfg := &models.PromotionConfig{
		ID:       models.PromotionConfigID,
		IsActive: false,
		Schedule: models.ScheduleDaily,
		Segments: []models.WheelSegment{
			{Position: 0, Text: "10% Rabatt", Type: models.SegmentWin},
			{Position: 1, Text: "Niete", Type: models.SegmentLose},
			{Position: 2, Text: "Gratis Espresso", Type: models.SegmentWin},
			{Position: 3, Text: "Niete", Type: models.SegmentLose},
			{Position: 4, Text: "Ein Extra-Stempel", Type: models.SegmentWin},
			{Position: 5, Text: "Niete", Type: models.SegmentLose},
		},
	}
	if err := s.db.Create(cfg).Error; err != nil {
		return err
	}

	log.Println("   Created default promotion config (inactive)")
	return nil
}

// seedCategories seeds the starter catalog categories
func (s *Seeder) seedCategories() error {
	categories := []models.Category{
		{Name: "Wein", Position: 1, IsActive: true},
		{Name: "Käse", Position: 2, IsActive: true},
		{Name: "Wurst & Schinken", Position: 3, IsActive: true},
		{Name: "Feinkost", Position: 4, IsActive: true},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := s.db.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := s.db.Create(&cat).Error; err != nil {
					return err
				}
				log.Printf("   Created category: %s", cat.Name)
			} else {
				return fmt.Errorf("category seed failed: %w", err)
			}
		}
	}

	return nil
}
