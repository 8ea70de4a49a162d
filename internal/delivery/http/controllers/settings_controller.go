package controllers

import (
	"log/slog"
	"net/http"

	"meetingreg/internal/delivery/http/helpers"
	"meetingreg/internal/domain"
)

type SettingsController struct {
	Logger  *slog.Logger
	Service domain.SettingsService
}

func NewSettingsController(logger *slog.Logger, svc domain.SettingsService) *SettingsController {
	return &SettingsController{
		Logger:  logger,
		Service: svc,
	}
}

// SettingsResponse is the success envelope for settings endpoints.
type SettingsResponse struct {
	Data  *domain.Settings  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetSettings godoc
// @Summary Fetch the page content settings
// @Description Returns the CMS-managed texts driving the registration form: titles, guidance copy, validation and confirmation messages. Defaults are served until an admin saves a customized document.
// @Tags settings
// @Produce json
// @Success 200 {object} controllers.SettingsResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /settings [get]
func (c *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Replace the page content settings
// @Description Overwrites the whole settings document. The field set is closed: unknown fields are rejected, fields left empty are stored empty.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.Settings true "Full settings document"
// @Success 200 {object} controllers.SettingsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/settings [put]
func (c *SettingsController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if !helpers.DecodeAndValidate(w, r, &settings) {
		return
	}
	if err := c.Service.Update(r.Context(), &settings); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &settings)
}
