package services

import (
	"context"
	"log"

	"feinkost-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron        *cron.Cron
	sessionRepo repositories.SessionRepository
}

// NewCronService creates a new cron service
func NewCronService(sessionRepo repositories.SessionRepository) *CronService {
	return &CronService{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
	}
}

// Start registers and starts all cron jobs
func (s *CronService) Start() {
	// Purge expired/revoked sessions nightly at 03:30
	_, err := s.cron.AddFunc("30 3 * * *", s.purgeSessions)
	if err != nil {
		log.Printf("❌ Failed to register session purge job: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the cron scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeSessions() {
	deleted, err := s.sessionRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Session purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired session(s)", deleted)
	}
}
