package repositories

import (
	"context"

	"investhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetRole(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// RequestRepository defines investor request repository interface
type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*models.InvestorRequest, error)
	List(ctx context.Context) ([]*models.InvestorRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*models.InvestorRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*models.InvestorRequest, error)
	ListRecent(ctx context.Context, limit int) ([]*models.InvestorRequest, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumAmountByStatuses(ctx context.Context, statuses []string) (float64, error)
}

// PlanRepository defines investment plan repository interface
type PlanRepository interface {
	Create(ctx context.Context, plan *models.InvestmentPlan) error
	GetByID(ctx context.Context, id uint) (*models.InvestmentPlan, error)
	GetByName(ctx context.Context, name string) (*models.InvestmentPlan, error)
	List(ctx context.Context) ([]*models.InvestmentPlan, error)
	ListActive(ctx context.Context) ([]*models.InvestmentPlan, error)
	Update(ctx context.Context, plan *models.InvestmentPlan) error
	Delete(ctx context.Context, id uint) error
}

// PayoutRepository defines payout repository interface
type PayoutRepository interface {
	Create(ctx context.Context, payout *models.Payout) error
	List(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error)
	ExistsForRequestSince(ctx context.Context, requestID, payoutType string, since int64) (bool, error)
}

// SettingRepository defines app setting repository interface
type SettingRepository interface {
	GetByKey(ctx context.Context, key string) (*models.AppSetting, error)
	List(ctx context.Context) ([]*models.AppSetting, error)
	Upsert(ctx context.Context, setting *models.AppSetting) error
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context) ([]*models.Notification, error)
}

// AppVersionRepository defines app version repository interface
type AppVersionRepository interface {
	Create(ctx context.Context, v *models.AppVersion) error
	List(ctx context.Context) ([]*models.AppVersion, error)
	GetLatest(ctx context.Context) (*models.AppVersion, error)
	MarkLatest(ctx context.Context, id uint) error
}
