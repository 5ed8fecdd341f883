package repositories

import (
	"context"
	"errors"

	"investhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// appVersionRepository implements AppVersionRepository interface
type appVersionRepository struct {
	db *gorm.DB
}

// NewAppVersionRepository creates a new app version repository
func NewAppVersionRepository(db *gorm.DB) AppVersionRepository {
	return &appVersionRepository{db: db}
}

// Create registers a new app version
func (r *appVersionRepository) Create(ctx context.Context, v *models.AppVersion) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// List returns all versions newest first
func (r *appVersionRepository) List(ctx context.Context) ([]*models.AppVersion, error) {
	var versions []*models.AppVersion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&versions).Error
	return versions, err
}

// GetLatest returns the version flagged as latest, falling back to the
// newest row when no flag is set
func (r *appVersionRepository) GetLatest(ctx context.Context) (*models.AppVersion, error) {
	var version models.AppVersion
	err := r.db.WithContext(ctx).Where("is_latest = ?", true).First(&version).Error
	if err == nil {
		return &version, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = r.db.WithContext(ctx).Order("created_at DESC").First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// MarkLatest flags one version as latest and clears the flag everywhere else
func (r *appVersionRepository) MarkLatest(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AppVersion{}).
			Where("is_latest = ?", true).
			Update("is_latest", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.AppVersion{}).
			Where("id = ?", id).
			Update("is_latest", true).Error
	})
}
