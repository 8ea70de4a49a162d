package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"meetingreg/internal/delivery/http/helpers"
	"meetingreg/internal/domain"
	"meetingreg/internal/export"
)

// sessionExpiry bounds an admin login token's lifetime.
const sessionExpiry = 12 * time.Hour

type AdminController struct {
	Logger        *slog.Logger
	Registrations domain.RegistrationService
	Admins        domain.AdminService
	Tokens        domain.TokenIssuer
	// exportLoc is the timezone for CSV timestamps; nil falls back to the
	// record's own location.
	exportLoc *time.Location
}

func NewAdminController(
	logger *slog.Logger,
	registrations domain.RegistrationService,
	admins domain.AdminService,
	tokens domain.TokenIssuer,
) *AdminController {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		logger.Warn("timezone Asia/Seoul unavailable, exports use record timezones", "err", err)
	}
	return &AdminController{
		Logger:        logger,
		Registrations: registrations,
		Admins:        admins,
		Tokens:        tokens,
		exportLoc:     loc,
	}
}

// LoginRequest is the body for POST /admin/login.
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []string {
	var errs []string
	if r.LoginID == "" {
		errs = append(errs, "login_id is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// LoginSuccessResponse is the success envelope for POST /admin/login.
type LoginSuccessResponse struct {
	Data  *LoginResult      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Login godoc
// @Summary Authenticate an admin
// @Description Checks the credential pair and returns a bearer token for the admin endpoints. The bootstrap admin/admin pair works even when credential storage is empty or unreachable.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body controllers.LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	cred, err := c.Admins.Authenticate(r.Context(), req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized,
				"아이디 또는 비밀번호가 올바르지 않습니다.")
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}

	token, err := c.Tokens.Issue(cred.ID, cred.LoginID, sessionExpiry)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &LoginResult{
		Token:       token,
		DisplayName: cred.DisplayName,
	})
}

// sortedRecords returns the cached records ordered latest-first, the order the
// dashboard and the export present them in.
func (c *AdminController) sortedRecords(r *http.Request) []*domain.Record {
	records := c.Registrations.Records(r.Context())
	sort.Slice(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})
	return records
}

// RecordListData is the payload of GET /admin/records.
type RecordListData struct {
	Records    []*domain.Record       `json:"records"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// RecordListResponse is the success envelope for GET /admin/records.
type RecordListResponse struct {
	Data  *RecordListData   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRecords godoc
// @Summary List submission records
// @Description Returns the cached records ordered latest-first, with pagination metadata.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 500)"
// @Success 200 {object} controllers.RecordListResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/records [get]
func (c *AdminController) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := c.sortedRecords(r)
	params := helpers.ParsePagination(r)

	total := len(records)
	start := (params.Page - 1) * params.PageSize
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, &RecordListData{
		Records:    records[start:end],
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// DeleteRecordsRequest is the body for POST /admin/records/delete.
type DeleteRecordsRequest struct {
	IDs []string `json:"ids"`
}

func (r DeleteRecordsRequest) Validate() []string {
	if len(r.IDs) == 0 {
		return []string{"ids must not be empty"}
	}
	return nil
}

// DeleteRecords godoc
// @Summary Delete selected records
// @Description Removes the given records. On storage failure the cache is re-synced from storage and the request fails.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body controllers.DeleteRecordsRequest true "Record IDs"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/records/delete [post]
func (c *AdminController) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req DeleteRecordsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Registrations.RemoveRecords(r.Context(), req.IDs); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]int{"removed": len(req.IDs)})
}

// ClearRecords godoc
// @Summary Delete all records
// @Description Empties the record collection. On storage failure the cache is re-synced from storage and the request fails.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/records [delete]
func (c *AdminController) ClearRecords(w http.ResponseWriter, r *http.Request) {
	if err := c.Registrations.ClearRecords(r.Context()); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// RefreshRecords godoc
// @Summary Re-sync the record cache from storage
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data.count is the refreshed record count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/records/refresh [post]
func (c *AdminController) RefreshRecords(w http.ResponseWriter, r *http.Request) {
	if err := c.Registrations.Refresh(r.Context()); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]int{
		"count": len(c.Registrations.Records(r.Context())),
	})
}

// ExportRecords godoc
// @Summary Export records as CSV
// @Description Streams a UTF-8 CSV with a BOM, Korean headers, and timestamps rendered in Korean convention, ordered latest-first. Intended for opening directly in spreadsheet applications.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/records/export [get]
func (c *AdminController) ExportRecords(w http.ResponseWriter, r *http.Request) {
	records := c.sortedRecords(r)

	filename := fmt.Sprintf("registrations_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteRecordsCSV(w, records, c.exportLoc); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv export failed", "err", err)
	}
}

// AdminListResponse is the success envelope for GET /admin/admins.
type AdminListResponse struct {
	Data  []*domain.AdminCredential `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListAdmins godoc
// @Summary List admin credentials
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminListResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/admins [get]
func (c *AdminController) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := c.Admins.List(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, admins)
}

// AdminRequest is the body for creating or updating an admin credential.
type AdminRequest struct {
	LoginID     string `json:"login_id"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// CreateAdmin godoc
// @Summary Create an admin credential
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body controllers.AdminRequest true "Credential"
// @Success 201 {object} helpers.APIResponse "data is the stored credential"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/admins [post]
func (c *AdminController) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cred, err := c.Admins.Upsert(r.Context(), &domain.AdminCredential{
		LoginID:     req.LoginID,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cred)
}

// UpdateAdmin godoc
// @Summary Update an admin credential
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param adminID path string true "Credential ID"
// @Param request body controllers.AdminRequest true "Credential"
// @Success 200 {object} helpers.APIResponse "data is the stored credential"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/admins/{adminID} [put]
func (c *AdminController) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := r.PathValue("adminID")
	if adminID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing adminID")
		return
	}
	var req AdminRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cred, err := c.Admins.Upsert(r.Context(), &domain.AdminCredential{
		ID:          adminID,
		LoginID:     req.LoginID,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cred)
}

// DeleteAdmin godoc
// @Summary Delete an admin credential
// @Description Removes a stored credential. The bootstrap admin/admin pair cannot be deleted; it is not a stored credential.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param adminID path string true "Credential ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/admins/{adminID} [delete]
func (c *AdminController) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	adminID := r.PathValue("adminID")
	if adminID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing adminID")
		return
	}
	if err := c.Admins.Remove(r.Context(), adminID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
