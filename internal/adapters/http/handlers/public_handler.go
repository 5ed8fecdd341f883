package handlers

import (
	"errors"

	"investhub/internal/core/services"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the unauthenticated landing-page endpoints
type PublicHandler struct {
	planService    *services.PlanService
	versionService *services.AppVersionService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(planService *services.PlanService, versionService *services.AppVersionService) *PublicHandler {
	return &PublicHandler{
		planService:    planService,
		versionService: versionService,
	}
}

// ListPlans returns the active investment plans
// @Summary Public plans
// @Description List active investment plans for the landing page
// @Tags Public
// @Produce json
// @Success 200 {object} response.Response
// @Router /public/plans [get]
func (h *PublicHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.planService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get plans")
	}

	return response.Success(c, "Plans retrieved successfully", plans)
}

// LatestApp returns the current mobile app download
// @Summary Latest app build
// @Description Get the download URL of the newest app build
// @Tags Public
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /public/app/latest [get]
func (h *PublicHandler) LatestApp(c *fiber.Ctx) error {
	latest, err := h.versionService.Latest(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoAppVersion) {
			return response.NotFound(c, "No app build is available yet")
		}
		return response.InternalServerError(c, "Failed to resolve app download")
	}

	return response.Success(c, "Latest app build retrieved", latest)
}
