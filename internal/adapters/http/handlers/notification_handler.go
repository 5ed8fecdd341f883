package handlers

import (
	"investhub/internal/core/services"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the audit notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns audit notifications
// @Summary List notifications
// @Description List audit notifications newest first, filtered by ?type= and ?search=
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param type query string false "Type filter (info, success, warning, error)"
// @Param search query string false "Case-insensitive search over title and message"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notificationService.List(c.Context(), c.Query("type"), c.Query("search"))
	if err != nil {
		return response.InternalServerError(c, "Failed to get notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", notifications)
}
