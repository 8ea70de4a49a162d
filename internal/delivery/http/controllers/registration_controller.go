package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"meetingreg/internal/delivery/http/helpers"
	"meetingreg/internal/domain"
)

// writeServiceError maps service errors to the API envelope. Validation
// failures carry the localized message verbatim so the client can show it
// directly.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, verr.Message)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// AttendRequest is the body for attendance submission and for the proxy gate
// check. Confirmed must be true when re-posting after a confirm_required
// response.
type AttendRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	AgreedToPolicy bool   `json:"agreed_to_policy"`
	Confirmed      bool   `json:"confirmed"`
}

// ProxyRequest is the body for the final proxy submission. The name and phone
// repeat the values already gated by the proxy check.
type ProxyRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	DelegateKind string `json:"delegate_kind"`
	DelegateName string `json:"delegate_name"`
	Signature    string `json:"signature"`
}

// SubmitResultResponse is the success envelope for submission endpoints.
type SubmitResultResponse struct {
	Data  *domain.SubmitResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ProxyDraftResponse is the success envelope for the proxy gate check.
type ProxyDraftResponse struct {
	Data  *domain.ProxyDraft `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SubmitAttend godoc
// @Summary Submit an attendance registration
// @Description Validates name, phone, and the privacy agreement, then records attendance. A phone number already on file yields 409 confirm_required with a localized prompt; re-post with confirmed=true to overwrite the existing record in place.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body controllers.AttendRequest true "Submission"
// @Success 200 {object} controllers.SubmitResultResponse "Existing record overwritten"
// @Success 201 {object} controllers.SubmitResultResponse "New record created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, message is the localized validation error"
// @Failure 409 {object} helpers.APIResponse "error.code: confirm_required, data describes the conflicting record"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/attend [post]
func (c *RegistrationController) SubmitAttend(w http.ResponseWriter, r *http.Request) {
	var req AttendRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, conflict, err := c.Service.SubmitAttend(r.Context(), domain.SubmissionRequest{
		Name:           req.Name,
		Phone:          req.Phone,
		AgreedToPolicy: req.AgreedToPolicy,
		Confirmed:      req.Confirmed,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if conflict != nil {
		helpers.WriteJSONConfirmRequired(w, conflict, conflict.Prompt)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, result)
}

// CheckProxy godoc
// @Summary Gate entry to the proxy-authoring stage
// @Description Validates the registrant's identity without persisting anything. Returns the draft identity to carry into the proxy form, or 409 confirm_required when a record for the phone already exists and confirmed is false.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body controllers.AttendRequest true "Identity to check"
// @Success 200 {object} controllers.ProxyDraftResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: confirm_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/proxy/check [post]
func (c *RegistrationController) CheckProxy(w http.ResponseWriter, r *http.Request) {
	var req AttendRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	draft, conflict, err := c.Service.BeginProxy(r.Context(), domain.SubmissionRequest{
		Name:           req.Name,
		Phone:          req.Phone,
		AgreedToPolicy: req.AgreedToPolicy,
		Confirmed:      req.Confirmed,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if conflict != nil {
		helpers.WriteJSONConfirmRequired(w, conflict, conflict.Prompt)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, draft)
}

// SubmitProxy godoc
// @Summary Submit a proxy authorization
// @Description Persists a proxy record with the resolved delegate name and the captured signature. The duplicate decision was already made at the gate check, so an existing record for the phone is overwritten without another prompt.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body controllers.ProxyRequest true "Proxy submission"
// @Success 200 {object} controllers.SubmitResultResponse "Existing record overwritten"
// @Success 201 {object} controllers.SubmitResultResponse "New record created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/proxy [post]
func (c *RegistrationController) SubmitProxy(w http.ResponseWriter, r *http.Request) {
	var req ProxyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.CompleteProxy(r.Context(), domain.ProxySubmission{
		Draft: domain.ProxyDraft{
			Name:  req.Name,
			Phone: req.Phone,
		},
		DelegateKind: domain.DelegateKind(req.DelegateKind),
		DelegateName: req.DelegateName,
		Signature:    req.Signature,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, result)
}
