package repositories

import (
	"context"

	"investhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new app setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetByKey gets a setting by key
func (r *settingRepository) GetByKey(ctx context.Context, key string) (*models.AppSetting, error) {
	var setting models.AppSetting
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// List returns all settings
func (r *settingRepository) List(ctx context.Context) ([]*models.AppSetting, error) {
	var settings []*models.AppSetting
	err := r.db.WithContext(ctx).Order("`key` ASC").Find(&settings).Error
	return settings, err
}

// Upsert inserts or replaces a setting value by key
func (r *settingRepository) Upsert(ctx context.Context, setting *models.AppSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}
