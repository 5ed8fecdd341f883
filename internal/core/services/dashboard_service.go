package services

import (
	"context"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"
)

// DashboardService aggregates the numbers on the back-office landing page
type DashboardService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.RequestRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(userRepo repositories.UserRepository, requestRepo repositories.RequestRepository) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
	}
}

// Stats is the dashboard summary
type Stats struct {
	TotalInvestors   int64                     `json:"total_investors"`
	PendingRequests  int64                     `json:"pending_requests"`
	TotalInvestment  float64                   `json:"total_investment"`
	ApprovedRequests int64                     `json:"approved_requests"`
	RecentRequests   []*models.InvestorRequest `json:"recent_requests"`
}

const recentLimit = 5

// GetStats computes the dashboard summary. Total investment counts money
// actually accepted, so only approved and active requests contribute.
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	investors, err := s.userRepo.CountByRole(ctx, string(domain.RoleInvestor))
	if err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.CountByStatus(ctx, string(domain.StatusPending))
	if err != nil {
		return nil, err
	}

	approved, err := s.requestRepo.CountByStatus(ctx, string(domain.StatusApproved))
	if err != nil {
		return nil, err
	}

	total, err := s.requestRepo.SumAmountByStatuses(ctx, []string{
		string(domain.StatusApproved),
		string(domain.StatusActive),
	})
	if err != nil {
		return nil, err
	}

	recent, err := s.requestRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalInvestors:   investors,
		PendingRequests:  pending,
		TotalInvestment:  total,
		ApprovedRequests: approved,
		RecentRequests:   recent,
	}, nil
}
