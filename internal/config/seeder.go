package config

import (
	"encoding/json"
	"log"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/core/domain"
	"investhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDefaultPlans(); err != nil {
		log.Printf("⚠️ Plan seeder skipped: %v", err)
	}
	if err := s.seedDefaultSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Email:    "admin@investhub.in",
		FullName: "Administrator",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDefaultPlans seeds the initial investment plans
func (s *Seeder) seedDefaultPlans() error {
	var count int64
	s.db.Model(&models.InvestmentPlan{}).Count(&count)
	if count > 0 {
		return nil
	}

	plans := []models.InvestmentPlan{
		{Name: "Starter", ROIPercentage: 12, DurationMonths: 6, MinAmount: 10000, MaxAmount: 100000, IsActive: true},
		{Name: "Growth", ROIPercentage: 18, DurationMonths: 12, MinAmount: 100000, MaxAmount: 1000000, IsActive: true},
		{Name: "Premium", ROIPercentage: 24, DurationMonths: 24, MinAmount: 1000000, MaxAmount: 10000000, IsActive: true},
	}

	if err := s.db.Create(&plans).Error; err != nil {
		return err
	}

	log.Printf("✅ Default plans created: %d", len(plans))
	return nil
}

// seedDefaultSettings seeds the well-known settings keys so the back office
// never reads a missing row
func (s *Seeder) seedDefaultSettings() error {
	var count int64
	s.db.Model(&models.AppSetting{}).Where("`key` = ?", models.KeyAdminBankAccounts).Count(&count)
	if count > 0 {
		return nil
	}

	emptyAccounts, err := json.Marshal([]domain.DisbursementAccount{})
	if err != nil {
		return err
	}

	settings := []models.AppSetting{
		{Key: models.KeyAdminBankAccounts, Value: string(emptyAccounts)},
		{Key: models.KeySupportEmail, Value: `"support@investhub.in"`},
		{Key: models.KeyMaintenanceMode, Value: "false"},
	}

	if err := s.db.Create(&settings).Error; err != nil {
		return err
	}

	log.Println("✅ Default settings created")
	return nil
}
