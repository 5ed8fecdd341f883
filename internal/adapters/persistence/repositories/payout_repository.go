package repositories

import (
	"context"
	"time"

	"investhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// payoutRepository implements PayoutRepository interface
type payoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

// Create creates a new payout
func (r *payoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// List lists payouts newest first with pagination
func (r *payoutRepository) List(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error) {
	var payouts []*models.Payout
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payout{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payouts).Error
	if err != nil {
		return nil, 0, err
	}

	return payouts, total, nil
}

// ExistsForRequestSince reports whether a payout of the given type was
// already created for the request on or after the unix timestamp. The
// monthly generator uses this to stay idempotent across restarts.
func (r *payoutRepository) ExistsForRequestSince(ctx context.Context, requestID, payoutType string, since int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payout{}).
		Where("request_id = ? AND type = ? AND created_at >= ?", requestID, payoutType, time.Unix(since, 0)).
		Count(&count).Error
	return count > 0, err
}
