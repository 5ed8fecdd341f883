package handlers

import (
	"errors"

	"investhub/internal/core/domain"
	"investhub/internal/core/services"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles the investor request review endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List returns investor requests, optionally filtered by status
// @Summary List requests
// @Description List investor requests newest first, filtered by ?status= (all, pending, approved, rejected, active)
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")

	requests, err := h.requestService.List(c.Context(), status)
	if err != nil {
		return response.InternalServerError(c, "Failed to get requests")
	}

	return response.Success(c, "Requests retrieved successfully", requests)
}

// Get returns a single request
// @Summary Get request
// @Description Get one investor request with the investor profile
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Request ID is required")
	}

	req, err := h.requestService.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "Request not found")
	}

	return response.Success(c, "Request retrieved successfully", req)
}

// ApproveRequest represents the approve request body
type ApproveRequest struct {
	AccountNumber string `json:"account_number"`
}

// Approve approves a pending request
// @Summary Approve request
// @Description Approve a pending request and embed the selected disbursement account
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body ApproveRequest true "Selected disbursement account"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Request ID is required")
	}

	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AccountNumber == "" {
		return response.BadRequest(c, "Bank account selection is required")
	}

	result, err := h.requestService.Approve(c.Context(), id, &services.ApproveInput{
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return h.decisionError(c, err)
	}

	return response.Success(c, "Request approved successfully", result)
}

// RejectRequest represents the reject request body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject rejects a pending request
// @Summary Reject request
// @Description Reject a pending request with a reason
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Request ID is required")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.requestService.Reject(c.Context(), id, &services.RejectInput{
		Reason: req.Reason,
	})
	if err != nil {
		return h.decisionError(c, err)
	}

	return response.Success(c, "Request rejected successfully", result)
}

// decisionError maps workflow errors onto HTTP statuses
func (h *RequestHandler) decisionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		return response.NotFound(c, "Request not found")
	case errors.Is(err, domain.ErrAlreadyDecided):
		return response.Conflict(c, "Request has already been decided")
	case errors.Is(err, domain.ErrDecisionInFlight):
		return response.Conflict(c, "A decision for this request is already in progress")
	case errors.Is(err, services.ErrEmptyReason):
		return response.UnprocessableEntity(c, "Rejection reason is required")
	case errors.Is(err, services.ErrNoDisbursementAccounts):
		return response.UnprocessableEntity(c, "No admin bank accounts configured, add one in settings first")
	case errors.Is(err, services.ErrAccountNotConfigured):
		return response.UnprocessableEntity(c, "Selected bank account is not in the configured list")
	default:
		return response.InternalServerError(c, "Failed to process decision")
	}
}
