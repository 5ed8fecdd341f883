package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"
	"investhub/internal/pkg/storage"

	"gorm.io/gorm"
)

// App version errors
var (
	ErrNoAppVersion = errors.New("no app build is available yet")
)

// AppVersionService resolves the mobile app download offered on the public
// landing page. Builds are uploaded to the storage bucket; the version
// table carries release metadata. The newest bucket object wins, with the
// table as fallback when the bucket cannot be reached.
type AppVersionService struct {
	versionRepo repositories.AppVersionRepository
	store       *storage.Client
	bucket      string
}

// NewAppVersionService creates a new app version service
func NewAppVersionService(versionRepo repositories.AppVersionRepository, store *storage.Client, bucket string) *AppVersionService {
	return &AppVersionService{
		versionRepo: versionRepo,
		store:       store,
		bucket:      bucket,
	}
}

// LatestAPKURL is the public download link plus release metadata
type LatestAPKURL struct {
	URL          string `json:"url"`
	FileName     string `json:"file_name"`
	Version      string `json:"version,omitempty"`
	ReleaseNotes string `json:"release_notes,omitempty"`
}

// Latest resolves the current app download
func (s *AppVersionService) Latest(ctx context.Context) (*LatestAPKURL, error) {
	// 1. Newest object in the bucket is authoritative
	if s.store != nil {
		entry, err := s.store.Latest(ctx, s.bucket)
		if err != nil {
			log.Printf("⚠️ Storage list failed, falling back to version table: %v", err)
		} else if entry != nil {
			result := &LatestAPKURL{
				URL:      s.store.PublicURL(s.bucket, entry.Name),
				FileName: entry.Name,
			}
			// Attach release metadata when a matching row exists
			if v, err := s.versionRepo.GetLatest(ctx); err == nil && v.FileName == entry.Name {
				result.Version = v.Version
				result.ReleaseNotes = v.ReleaseNotes
			}
			return result, nil
		}
	}

	// 2. Fall back to the registered version table
	v, err := s.versionRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAppVersion
		}
		return nil, err
	}

	result := &LatestAPKURL{
		FileName:     v.FileName,
		Version:      v.Version,
		ReleaseNotes: v.ReleaseNotes,
	}
	if s.store != nil {
		result.URL = s.store.PublicURL(s.bucket, v.FileName)
	}
	return result, nil
}

// List returns all registered versions, newest first
func (s *AppVersionService) List(ctx context.Context) ([]*models.AppVersion, error) {
	return s.versionRepo.List(ctx)
}

// RegisterInput describes an uploaded build
type RegisterInput struct {
	Version      string `json:"version" validate:"required"`
	FileName     string `json:"file_name" validate:"required"`
	ReleaseNotes string `json:"release_notes"`
}

// Register records an uploaded build and marks it the latest
func (s *AppVersionService) Register(ctx context.Context, input *RegisterInput) (*models.AppVersion, error) {
	version := strings.TrimSpace(input.Version)
	fileName := strings.TrimSpace(input.FileName)
	if version == "" || fileName == "" {
		return nil, domain.ErrInvalidInput
	}

	v := &models.AppVersion{
		Version:      version,
		FileName:     fileName,
		ReleaseNotes: input.ReleaseNotes,
	}
	if err := s.versionRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := s.versionRepo.MarkLatest(ctx, v.ID); err != nil {
		return nil, err
	}
	v.IsLatest = true

	log.Printf("✅ App version registered: %s (%s)", v.Version, v.FileName)
	return v, nil
}
