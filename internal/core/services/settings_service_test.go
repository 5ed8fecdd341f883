package services_test

import (
	"context"
	"sync"
	"testing"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/core/domain"
	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSettingRepo implements repositories.SettingRepository in memory
type fakeSettingRepo struct {
	mu       sync.Mutex
	settings map[string]*models.AppSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*models.AppSetting{}}
}

func (f *fakeSettingRepo) GetByKey(ctx context.Context, key string) (*models.AppSetting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSettingRepo) List(ctx context.Context) ([]*models.AppSetting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.AppSetting, 0, len(f.settings))
	for _, s := range f.settings {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, setting *models.AppSetting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *setting
	f.settings[setting.Key] = &copied
	return nil
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	svc := services.NewSettingsService(newFakeSettingRepo())

	_, err := svc.Set(context.Background(), "support_email", "not json")
	require.ErrorIs(t, err, services.ErrInvalidSettingValue)

	_, err = svc.Set(context.Background(), "", `"x"`)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetRoundTrips(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := services.NewSettingsService(repo)

	saved, err := svc.Set(context.Background(), "maintenance_mode", "true")
	require.NoError(t, err)
	require.Equal(t, "true", saved.Value)

	got, err := svc.Get(context.Background(), "maintenance_mode")
	require.NoError(t, err)
	require.Equal(t, "true", got.Value)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, services.ErrSettingNotFound)
}

func TestDisbursementAccountsMissingKeyIsEmpty(t *testing.T) {
	svc := services.NewSettingsService(newFakeSettingRepo())

	accounts, err := svc.DisbursementAccounts(context.Background())
	require.NoError(t, err)
	require.Empty(t, accounts)
}

func TestDisbursementAccountsRoundTrip(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := services.NewSettingsService(repo)

	err := svc.UpdateDisbursementAccounts(context.Background(), testAccounts)
	require.NoError(t, err)

	accounts, err := svc.DisbursementAccounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, testAccounts, accounts)
}

func TestUpdateDisbursementAccountsValidates(t *testing.T) {
	svc := services.NewSettingsService(newFakeSettingRepo())

	err := svc.UpdateDisbursementAccounts(context.Background(), []domain.DisbursementAccount{
		{BankName: "HDFC Bank", AccountHolderName: "", AccountNumber: "123", IFSCCode: "HDFC0001234"},
	})
	require.ErrorIs(t, err, services.ErrInvalidAccount)
}
