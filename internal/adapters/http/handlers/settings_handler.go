package handlers

import (
	"errors"

	"investhub/internal/core/domain"
	"investhub/internal/core/services"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles app settings and admin bank account endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
	versionService  *services.AppVersionService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService, versionService *services.AppVersionService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		versionService:  versionService,
	}
}

// List returns all settings
// @Summary List settings
// @Description List all app settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/settings [get]
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingsService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// SetRequest represents the set setting body
type SetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Set upserts one setting
// @Summary Set setting
// @Description Create or update one app setting; the value must be valid JSON
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetRequest true "Setting key and JSON value"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	var req SetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	setting, err := h.settingsService.Set(c.Context(), req.Key, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Setting key is required")
		case errors.Is(err, services.ErrInvalidSettingValue):
			return response.UnprocessableEntity(c, "Setting value must be valid JSON")
		default:
			return response.InternalServerError(c, "Failed to save setting")
		}
	}

	return response.Success(c, "Setting saved successfully", setting)
}

// GetBankAccounts returns the configured disbursement accounts
// @Summary Get admin bank accounts
// @Description List the disbursement accounts offered at approval time
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/settings/bank-accounts [get]
func (h *SettingsHandler) GetBankAccounts(c *fiber.Ctx) error {
	accounts, err := h.settingsService.DisbursementAccounts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get bank accounts")
	}
	if accounts == nil {
		accounts = []domain.DisbursementAccount{}
	}

	return response.Success(c, "Bank accounts retrieved successfully", accounts)
}

// UpdateBankAccounts replaces the disbursement account list
// @Summary Update admin bank accounts
// @Description Replace the disbursement account list; decided requests keep their embedded copies
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []domain.DisbursementAccount true "Bank accounts"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/settings/bank-accounts [put]
func (h *SettingsHandler) UpdateBankAccounts(c *fiber.Ctx) error {
	var accounts []domain.DisbursementAccount
	if err := c.BodyParser(&accounts); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.settingsService.UpdateDisbursementAccounts(c.Context(), accounts); err != nil {
		if errors.Is(err, services.ErrInvalidAccount) {
			return response.UnprocessableEntity(c, "Bank account is missing required fields")
		}
		return response.InternalServerError(c, "Failed to update bank accounts")
	}

	return response.Success(c, "Bank accounts updated successfully", accounts)
}

// ListAppVersions returns the registered app builds
// @Summary List app versions
// @Description List registered app builds, newest first
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/settings/app-versions [get]
func (h *SettingsHandler) ListAppVersions(c *fiber.Ctx) error {
	versions, err := h.versionService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get app versions")
	}

	return response.Success(c, "App versions retrieved successfully", versions)
}

// RegisterAppVersion records an uploaded app build
// @Summary Register app version
// @Description Register an uploaded app build and mark it the latest
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterInput true "Build metadata"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/settings/app-versions [post]
func (h *SettingsHandler) RegisterAppVersion(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	version, err := h.versionService.Register(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Version and file name are required")
		}
		return response.InternalServerError(c, "Failed to register app version")
	}

	return response.Created(c, "App version registered successfully", version)
}
