package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"

	"gorm.io/gorm"
)

// Settings errors
var (
	ErrSettingNotFound     = errors.New("setting not found")
	ErrInvalidSettingValue = errors.New("setting value must be valid JSON")
	ErrInvalidAccount      = errors.New("bank account is missing required fields")
)

// SettingsService manages the app_settings key/value table. Each value is
// raw JSON; the admin bank account list gets typed accessors because the
// request workflow snapshots from it.
type SettingsService struct {
	settingRepo repositories.SettingRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingRepo repositories.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// List returns all settings
func (s *SettingsService) List(ctx context.Context) ([]*models.AppSetting, error) {
	return s.settingRepo.List(ctx)
}

// Get returns one setting by key
func (s *SettingsService) Get(ctx context.Context, key string) (*models.AppSetting, error) {
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}

// Set upserts one setting. The value must parse as JSON so readers of the
// table never have to defend against malformed payloads.
func (s *SettingsService) Set(ctx context.Context, key, value string) (*models.AppSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	if !json.Valid([]byte(value)) {
		return nil, ErrInvalidSettingValue
	}

	setting := &models.AppSetting{Key: key, Value: value}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	log.Printf("✅ Setting updated: %s", key)
	return s.settingRepo.GetByKey(ctx, key)
}

// DisbursementAccounts returns the configured admin bank accounts. A
// missing key is an empty list, not an error.
func (s *SettingsService) DisbursementAccounts(ctx context.Context) ([]domain.DisbursementAccount, error) {
	setting, err := s.settingRepo.GetByKey(ctx, models.KeyAdminBankAccounts)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var accounts []domain.DisbursementAccount
	if err := json.Unmarshal([]byte(setting.Value), &accounts); err != nil {
		return nil, ErrInvalidSettingValue
	}
	return accounts, nil
}

// UpdateDisbursementAccounts replaces the admin bank account list. Existing
// decided requests keep their embedded copies regardless of what changes
// here.
func (s *SettingsService) UpdateDisbursementAccounts(ctx context.Context, accounts []domain.DisbursementAccount) error {
	for _, a := range accounts {
		if strings.TrimSpace(a.BankName) == "" ||
			strings.TrimSpace(a.AccountHolderName) == "" ||
			strings.TrimSpace(a.AccountNumber) == "" ||
			strings.TrimSpace(a.IFSCCode) == "" {
			return ErrInvalidAccount
		}
	}

	value, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	setting := &models.AppSetting{Key: models.KeyAdminBankAccounts, Value: string(value)}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return err
	}

	log.Printf("✅ Admin bank accounts updated (%d accounts)", len(accounts))
	return nil
}
