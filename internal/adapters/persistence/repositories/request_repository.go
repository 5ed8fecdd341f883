package repositories

import (
	"context"

	"investhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new investor request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// GetByID gets a request by ID with its owning user preloaded
func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.InvestorRequest, error) {
	var req models.InvestorRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns all requests newest first
func (r *requestRepository) List(ctx context.Context) ([]*models.InvestorRequest, error) {
	var reqs []*models.InvestorRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListRecent returns the newest requests, at most limit of them
func (r *requestRepository) ListRecent(ctx context.Context, limit int) ([]*models.InvestorRequest, error) {
	var reqs []*models.InvestorRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

// ListByUser returns a user's requests newest first
func (r *requestRepository) ListByUser(ctx context.Context, userID string) ([]*models.InvestorRequest, error) {
	var reqs []*models.InvestorRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListByStatus returns requests with the given status newest first
func (r *requestRepository) ListByStatus(ctx context.Context, status string) ([]*models.InvestorRequest, error) {
	var reqs []*models.InvestorRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// UpdateFields applies a targeted patch to a single request row. Decisions go
// through this rather than Save so unrelated columns are never clobbered.
func (r *requestRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.InvestorRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus counts requests with a given status
func (r *requestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvestorRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumAmountByStatuses sums investment amounts over the given statuses
func (r *requestRepository) SumAmountByStatuses(ctx context.Context, statuses []string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.InvestorRequest{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(investment_amount), 0)").
		Scan(&total).Error
	return total, err
}
