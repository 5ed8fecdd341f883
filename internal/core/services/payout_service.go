package services

import (
	"context"
	"log"
	"time"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"
	"investhub/internal/pkg/pagination"
)

// PayoutService handles monthly profit payouts for running investments
type PayoutService struct {
	payoutRepo  repositories.PayoutRepository
	requestRepo repositories.RequestRepository
	planRepo    repositories.PlanRepository
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	payoutRepo repositories.PayoutRepository,
	requestRepo repositories.RequestRepository,
	planRepo repositories.PlanRepository,
) *PayoutService {
	return &PayoutService{
		payoutRepo:  payoutRepo,
		requestRepo: requestRepo,
		planRepo:    planRepo,
	}
}

// List returns payouts one page at a time, newest first
func (s *PayoutService) List(ctx context.Context, params *pagination.Params) ([]*models.Payout, int64, error) {
	return s.payoutRepo.List(ctx, params.Offset, params.Limit)
}

// GenerateMonthlyProfits creates one profit payout per running investment
// for the current month. A running investment is either active or approved
// with the transfer confirmed. The run is idempotent: an investment that
// already has a profit payout this calendar month is skipped, so re-running
// after a partial failure never double-pays.
func (s *PayoutService) GenerateMonthlyProfits(ctx context.Context) (int, error) {
	running, err := s.requestRepo.ListByStatus(ctx, string(domain.StatusActive))
	if err != nil {
		return 0, err
	}
	approved, err := s.requestRepo.ListByStatus(ctx, string(domain.StatusApproved))
	if err != nil {
		return 0, err
	}
	for _, req := range approved {
		if req.IsConfirmed {
			running = append(running, req)
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Unix()

	created := 0
	for _, req := range running {
		exists, err := s.payoutRepo.ExistsForRequestSince(ctx, req.ID, models.PayoutTypeProfit, monthStart)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		plan, err := s.planRepo.GetByName(ctx, req.PlanName)
		if err != nil {
			log.Printf("⚠️ Skipping payout for request %s: plan %q not found", req.ID, req.PlanName)
			continue
		}

		// Monthly profit: annualized ROI spread over twelve months
		amount := req.InvestmentAmount * plan.ROIPercentage / 100 / 12

		payout := &models.Payout{
			UserID:    req.UserID,
			RequestID: req.ID,
			Type:      models.PayoutTypeProfit,
			Amount:    amount,
			Status:    string(domain.StatusPending),
		}
		if err := s.payoutRepo.Create(ctx, payout); err != nil {
			return created, err
		}
		created++
	}

	log.Printf("✅ Monthly profit run: %d payouts created (%d running investments)", created, len(running))
	return created, nil
}
