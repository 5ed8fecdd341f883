package repositories

import (
	"context"

	"investhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// planRepository implements PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new investment plan repository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new plan
func (r *planRepository) Create(ctx context.Context, plan *models.InvestmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// GetByID gets a plan by ID
func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByName gets a plan by name
func (r *planRepository) GetByName(ctx context.Context, name string) (*models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns all plans ordered by ID
func (r *planRepository) List(ctx context.Context) ([]*models.InvestmentPlan, error) {
	var plans []*models.InvestmentPlan
	err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}

// ListActive returns active plans ordered by ID
func (r *planRepository) ListActive(ctx context.Context) ([]*models.InvestmentPlan, error) {
	var plans []*models.InvestmentPlan
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&plans).Error
	return plans, err
}

// Update updates a plan
func (r *planRepository) Update(ctx context.Context, plan *models.InvestmentPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete soft deletes a plan
func (r *planRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InvestmentPlan{}, id).Error
}
