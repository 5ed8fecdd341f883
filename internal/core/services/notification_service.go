package services

import (
	"context"
	"log"
	"strings"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
)

// NotificationService records and lists back-office audit notifications
type NotificationService struct {
	notifyRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifyRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifyRepo: notifyRepo}
}

// Record writes a notification, best effort. Failures are logged rather
// than returned so a broken audit trail never blocks the action itself.
func (s *NotificationService) Record(ctx context.Context, notifyType, title, message string) {
	n := &models.Notification{
		Title:   title,
		Message: message,
		Type:    notifyType,
	}
	if err := s.notifyRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to record notification: %v", err)
	}
}

// List returns notifications newest first, optionally filtered by type and
// a case-insensitive search over title and message
func (s *NotificationService) List(ctx context.Context, notifyType, search string) ([]*models.Notification, error) {
	all, err := s.notifyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if notifyType == "" && search == "" {
		return all, nil
	}

	search = strings.ToLower(search)
	filtered := make([]*models.Notification, 0, len(all))
	for _, n := range all {
		if notifyType != "" && n.Type != notifyType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Message), search) {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered, nil
}
