package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"investhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled background jobs: nightly purge of expired
// refresh tokens and the monthly profit payout run.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	payouts          *PayoutService
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, payouts *PayoutService) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		payouts:          payouts,
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() error {
	// Purge expired refresh tokens at 03:00 daily
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return fmt.Errorf("register token purge job: %w", err)
	}

	// Profit payouts on the 1st of each month at 06:00
	if _, err := s.cron.AddFunc("0 6 1 * *", s.runMonthlyPayouts); err != nil {
		return fmt.Errorf("register monthly payout job: %w", err)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
	return nil
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	log.Printf("✅ Token purge: %d expired refresh tokens removed", deleted)
}

func (s *CronService) runMonthlyPayouts() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.payouts.GenerateMonthlyProfits(ctx); err != nil {
		log.Printf("❌ Monthly payout run failed: %v", err)
	}
}
