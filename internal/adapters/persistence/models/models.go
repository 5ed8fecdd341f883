package models

import (
	"time"

	"investhub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. The ID is the auth provider's subject id
// (UUID string) so profile rows line up with issued sessions.
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'investor'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Investment Tables
// ============================================================

// InvestorRequest represents investor_requests table. Created by the
// investor-facing app; the admin workflow only reads rows and moves status
// from pending to a terminal value. Exactly one terminal-branch field is
// populated: admin_bank_details on approval, rejection_reason on rejection.
type InvestorRequest struct {
	ID                string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID            string                      `gorm:"size:36;index;not null" json:"user_id"`
	PlanName          string                      `gorm:"size:100;not null" json:"plan_name"`
	InvestmentAmount  float64                     `gorm:"type:decimal(15,2);not null" json:"investment_amount"`
	AccountHolderName string                      `gorm:"size:100" json:"account_holder_name"`
	BankName          string                      `gorm:"size:100" json:"bank_name"`
	AccountNumber     string                      `gorm:"size:30" json:"account_number"`
	IFSCCode          string                      `gorm:"size:20" json:"ifsc_code"`
	AadhaarCardURL    string                      `gorm:"size:500" json:"aadhaar_card_url"`
	PanCardURL        string                      `gorm:"size:500" json:"pan_card_url"`
	SelfieURL         string                      `gorm:"size:500" json:"selfie_url"`
	TransactionUTR    string                      `gorm:"size:50" json:"transaction_utr"`
	Status            string                      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectionReason   string                      `gorm:"type:text" json:"rejection_reason,omitempty"`
	IsConfirmed       bool                        `gorm:"default:false" json:"is_confirmed"`
	AdminBankDetails  *domain.DisbursementAccount `gorm:"serializer:json" json:"admin_bank_details,omitempty"`
	CreatedAt         time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (InvestorRequest) TableName() string {
	return "investor_requests"
}

// InvestmentPlan represents investment_plans table
type InvestmentPlan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ROIPercentage  float64        `gorm:"type:decimal(5,2);not null" json:"roi_percentage"`
	DurationMonths int            `gorm:"not null" json:"duration_months"`
	MinAmount      float64        `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount      float64        `gorm:"type:decimal(15,2);not null" json:"max_amount"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

// Payout represents payouts table
type Payout struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"size:36;index;not null" json:"user_id"`
	RequestID      string    `gorm:"size:36;index" json:"request_id"`
	Type           string    `gorm:"size:20;not null" json:"type"`
	Amount         float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	TransactionUTR string    `gorm:"size:50" json:"transaction_utr"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Payout) TableName() string {
	return "payouts"
}

// Payout types
const (
	PayoutTypeProfit    = "Profit"
	PayoutTypePrincipal = "Principal"
)

// ============================================================
// Settings & Misc Tables
// ============================================================

// AppSetting represents app_settings table. Value holds raw JSON so each key
// can carry its own shape (the admin bank account list lives under
// KeyAdminBankAccounts).
type AppSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

// Well-known setting keys
const (
	KeyAdminBankAccounts = "admin_bank_accounts"
	KeySupportEmail      = "support_email"
	KeyMaintenanceMode   = "maintenance_mode"
)

// AppVersion represents app_versions table
type AppVersion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Version      string    `gorm:"size:20;uniqueIndex;not null" json:"version"`
	FileName     string    `gorm:"size:200;not null" json:"file_name"`
	ReleaseNotes string    `gorm:"type:text" json:"release_notes"`
	IsLatest     bool      `gorm:"default:false" json:"is_latest"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AppVersion) TableName() string {
	return "app_versions"
}

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:20;not null;default:'info'" json:"type"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification types
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&InvestorRequest{},
		&InvestmentPlan{},
		&Payout{},
		&AppSetting{},
		&AppVersion{},
		&Notification{},
	)
}
