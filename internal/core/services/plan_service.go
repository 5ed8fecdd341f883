package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Plan errors
var (
	ErrPlanNotFound   = errors.New("investment plan not found")
	ErrPlanExists     = errors.New("an investment plan with this name already exists")
	ErrInvalidPlan    = errors.New("invalid plan parameters")
	ErrInvalidAmounts = errors.New("min amount must be positive and not exceed max amount")
)

// PlanService handles investment plan management
type PlanService struct {
	planRepo repositories.PlanRepository
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo repositories.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// PlanInput represents create/update plan input
type PlanInput struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	ROIPercentage  float64 `json:"roi_percentage" validate:"required,gt=0"`
	DurationMonths int     `json:"duration_months" validate:"required,gt=0"`
	MinAmount      float64 `json:"min_amount" validate:"required,gt=0"`
	MaxAmount      float64 `json:"max_amount" validate:"required,gt=0"`
	IsActive       *bool   `json:"is_active"`
}

// List returns all plans, inactive included
func (s *PlanService) List(ctx context.Context) ([]*models.InvestmentPlan, error) {
	return s.planRepo.List(ctx)
}

// ListActive returns plans shown on the public landing page
func (s *PlanService) ListActive(ctx context.Context) ([]*models.InvestmentPlan, error) {
	return s.planRepo.ListActive(ctx)
}

// GetByID returns one plan
func (s *PlanService) GetByID(ctx context.Context, id uint) (*models.InvestmentPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// Create adds a new investment plan
func (s *PlanService) Create(ctx context.Context, input *PlanInput) (*models.InvestmentPlan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	// Plan names are unique; they key investor requests
	existing, err := s.planRepo.GetByName(ctx, input.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPlanExists
	}

	plan := &models.InvestmentPlan{
		Name:           strings.TrimSpace(input.Name),
		ROIPercentage:  input.ROIPercentage,
		DurationMonths: input.DurationMonths,
		MinAmount:      input.MinAmount,
		MaxAmount:      input.MaxAmount,
		IsActive:       true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	log.Printf("✅ Plan created: %s (%.2f%% / %d months)", plan.Name, plan.ROIPercentage, plan.DurationMonths)
	return plan, nil
}

// Update modifies an existing plan
func (s *PlanService) Update(ctx context.Context, id uint, input *PlanInput) (*models.InvestmentPlan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPlanNotFound
	}

	// Renaming must not collide with another plan
	if name := strings.TrimSpace(input.Name); name != plan.Name {
		existing, err := s.planRepo.GetByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrPlanExists
		}
		plan.Name = name
	}

	plan.ROIPercentage = input.ROIPercentage
	plan.DurationMonths = input.DurationMonths
	plan.MinAmount = input.MinAmount
	plan.MaxAmount = input.MaxAmount
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	log.Printf("✅ Plan updated: %s", plan.Name)
	return plan, nil
}

// Delete soft-deletes a plan
func (s *PlanService) Delete(ctx context.Context, id uint) error {
	if _, err := s.planRepo.GetByID(ctx, id); err != nil {
		return ErrPlanNotFound
	}
	if err := s.planRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("✅ Plan deleted: %d", id)
	return nil
}

func validatePlanInput(input *PlanInput) error {
	if strings.TrimSpace(input.Name) == "" || input.ROIPercentage <= 0 || input.DurationMonths <= 0 {
		return ErrInvalidPlan
	}
	if input.MinAmount <= 0 || input.MinAmount > input.MaxAmount {
		return ErrInvalidAmounts
	}
	return nil
}
