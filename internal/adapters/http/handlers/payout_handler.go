package handlers

import (
	"investhub/internal/core/services"
	"investhub/internal/pkg/pagination"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayoutHandler handles payout endpoints
type PayoutHandler struct {
	payoutService *services.PayoutService
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// List returns payouts one page at a time
// @Summary List payouts
// @Description List profit and principal payouts with pagination
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Response
// @Router /admin/payouts [get]
func (h *PayoutHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payouts, total, err := h.payoutService.List(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to get payouts")
	}

	return c.JSON(pagination.NewResponse(payouts, params, total))
}

// RunMonthly triggers the monthly profit run by hand
// @Summary Run monthly payouts
// @Description Generate this month's profit payouts for running investments; already paid investments are skipped
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/payouts/run [post]
func (h *PayoutHandler) RunMonthly(c *fiber.Ctx) error {
	created, err := h.payoutService.GenerateMonthlyProfits(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to run monthly payouts")
	}

	return response.Success(c, "Monthly payout run completed", fiber.Map{
		"created": created,
	})
}
