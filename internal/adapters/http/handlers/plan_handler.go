package handlers

import (
	"errors"
	"strconv"

	"investhub/internal/core/services"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PlanHandler handles investment plan management endpoints
type PlanHandler struct {
	planService *services.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// List returns all plans
// @Summary List plans
// @Description List all investment plans, inactive included
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.planService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get plans")
	}

	return response.Success(c, "Plans retrieved successfully", plans)
}

// Create adds a new plan
// @Summary Create plan
// @Description Create a new investment plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PlanInput true "Plan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var input services.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	plan, err := h.planService.Create(c.Context(), &input)
	if err != nil {
		return h.planError(c, err)
	}

	return response.Created(c, "Plan created successfully", plan)
}

// Update modifies a plan
// @Summary Update plan
// @Description Update an existing investment plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param body body services.PlanInput true "Plan data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	var input services.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	plan, err := h.planService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return h.planError(c, err)
	}

	return response.Success(c, "Plan updated successfully", plan)
}

// Delete removes a plan
// @Summary Delete plan
// @Description Delete an investment plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	if err := h.planService.Delete(c.Context(), uint(id)); err != nil {
		return h.planError(c, err)
	}

	return response.Success(c, "Plan deleted successfully", nil)
}

func (h *PlanHandler) planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		return response.NotFound(c, "Investment plan not found")
	case errors.Is(err, services.ErrPlanExists):
		return response.Conflict(c, "An investment plan with this name already exists")
	case errors.Is(err, services.ErrInvalidPlan), errors.Is(err, services.ErrInvalidAmounts):
		return response.UnprocessableEntity(c, err.Error())
	default:
		return response.InternalServerError(c, "Failed to process plan")
	}
}
