package services

import (
	"context"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"
	"investhub/internal/pkg/pagination"
)

// UserService handles the back office's user views
type UserService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.RequestRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, requestRepo repositories.RequestRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
	}
}

// UserDetail is the per-user drill-down: profile plus investment history
// and the bank details from the most recent request.
type UserDetail struct {
	User        *models.UserResponse      `json:"user"`
	Investments []*models.InvestorRequest `json:"investments"`
	BankDetails *BankDetails              `json:"bank_details,omitempty"`
}

// BankDetails is the investor's payout account from their latest request
type BankDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
}

// List returns users one page at a time
func (s *UserService) List(ctx context.Context, params *pagination.Params) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, total, nil
}

// GetDetail returns one user with their investment history. Bank details
// come from the newest request since investors re-enter them per request.
func (s *UserService) GetDetail(ctx context.Context, userID string) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	investments, err := s.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{
		User:        user.ToResponse(),
		Investments: investments,
	}
	if len(investments) > 0 {
		latest := investments[0]
		detail.BankDetails = &BankDetails{
			AccountHolderName: latest.AccountHolderName,
			BankName:          latest.BankName,
			AccountNumber:     latest.AccountNumber,
			IFSCCode:          latest.IFSCCode,
		}
	}
	return detail, nil
}
