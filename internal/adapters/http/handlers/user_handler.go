package handlers

import (
	"errors"

	"investhub/internal/core/domain"
	"investhub/internal/core/services"
	"investhub/internal/pkg/pagination"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the back-office user views
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns users one page at a time
// @Summary List users
// @Description List registered users with pagination
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to get users")
	}

	return c.JSON(pagination.NewResponse(users, params, total))
}

// GetDetail returns one user with investments and bank details
// @Summary User detail
// @Description Get a user's profile, investment history and latest bank details
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetDetail(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	detail, err := h.userService.GetDetail(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user detail")
	}

	return response.Success(c, "User detail retrieved successfully", detail)
}
