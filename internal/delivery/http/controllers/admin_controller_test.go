package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetingreg/internal/delivery/http/helpers"
	"meetingreg/internal/domain"
)

type mockAdminService struct {
	cred    *domain.AdminCredential
	creds   []*domain.AdminCredential
	authErr error
	err     error
	removed []string
}

func (m *mockAdminService) Authenticate(ctx context.Context, loginID, password string) (*domain.AdminCredential, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.cred, nil
}

func (m *mockAdminService) List(ctx context.Context) ([]*domain.AdminCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.creds, nil
}

func (m *mockAdminService) Upsert(ctx context.Context, cred *domain.AdminCredential) (*domain.AdminCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	if cred.ID == "" {
		cred.ID = "generated-id"
	}
	return cred, nil
}

func (m *mockAdminService) Remove(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) Issue(adminID, loginID string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func newAdminController(reg *mockRegistrationService, adm *mockAdminService, tokens *mockTokenIssuer) *AdminController {
	if reg == nil {
		reg = &mockRegistrationService{}
	}
	if adm == nil {
		adm = &mockAdminService{}
	}
	if tokens == nil {
		tokens = &mockTokenIssuer{token: "tok"}
	}
	return NewAdminController(testLogger(), reg, adm, tokens)
}

func TestAdminController_Login_Success(t *testing.T) {
	adm := &mockAdminService{cred: &domain.AdminCredential{LoginID: "admin", DisplayName: "기본 관리자"}}
	ctrl := newAdminController(nil, adm, &mockTokenIssuer{token: "signed-token"})

	body := `{"login_id":"admin","password":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp LoginSuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Token != "signed-token" {
		t.Errorf("token = %s", resp.Data.Token)
	}
	if resp.Data.DisplayName != "기본 관리자" {
		t.Errorf("display_name = %s", resp.Data.DisplayName)
	}
}

func TestAdminController_Login_InvalidCredentials(t *testing.T) {
	ctrl := newAdminController(nil, &mockAdminService{authErr: domain.ErrInvalidCredentials}, nil)

	body := `{"login_id":"admin","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeUnauthorized {
		t.Fatalf("error = %+v", resp.Error)
	}
}

func TestAdminController_Login_MissingFields(t *testing.T) {
	ctrl := newAdminController(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"login_id":"admin"}`))
	w := httptest.NewRecorder()

	ctrl.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAdminController_ListRecords_LatestFirst(t *testing.T) {
	base := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	reg := &mockRegistrationService{records: []*domain.Record{
		domain.NewAttendRecord("old", "홍길동", "01011111111", base),
		domain.NewAttendRecord("new", "김철수", "01022222222", base.Add(time.Hour)),
	}}
	ctrl := newAdminController(reg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/records", nil)
	w := httptest.NewRecorder()

	ctrl.ListRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp RecordListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(resp.Data.Records))
	}
	if resp.Data.Records[0].ID != "new" {
		t.Errorf("first record = %s, want latest first", resp.Data.Records[0].ID)
	}
	if resp.Data.Pagination.Total != 2 {
		t.Errorf("total = %d", resp.Data.Pagination.Total)
	}
}

func TestAdminController_ListRecords_Pagination(t *testing.T) {
	base := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	var records []*domain.Record
	for i := 0; i < 5; i++ {
		records = append(records, domain.NewAttendRecord(
			string(rune('a'+i)), "홍길동", "0101111111"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Minute)))
	}
	ctrl := newAdminController(&mockRegistrationService{records: records}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/records?page=2&page_size=2", nil)
	w := httptest.NewRecorder()

	ctrl.ListRecords(w, req)

	var resp RecordListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(resp.Data.Records))
	}
	if resp.Data.Pagination.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", resp.Data.Pagination.TotalPages)
	}
}

func TestAdminController_DeleteRecords(t *testing.T) {
	reg := &mockRegistrationService{}
	ctrl := newAdminController(reg, nil, nil)

	body := `{"ids":["rec-1","rec-2"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/records/delete", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.DeleteRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if len(reg.removedIDs) != 2 {
		t.Errorf("removed = %v", reg.removedIDs)
	}
}

func TestAdminController_DeleteRecords_EmptyIDs(t *testing.T) {
	ctrl := newAdminController(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/records/delete", strings.NewReader(`{"ids":[]}`))
	w := httptest.NewRecorder()

	ctrl.DeleteRecords(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAdminController_DeleteRecords_StorageFailure(t *testing.T) {
	reg := &mockRegistrationService{removeErr: errors.New("down")}
	ctrl := newAdminController(reg, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/records/delete", strings.NewReader(`{"ids":["rec-1"]}`))
	w := httptest.NewRecorder()

	ctrl.DeleteRecords(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestAdminController_ClearAndRefresh(t *testing.T) {
	reg := &mockRegistrationService{}
	ctrl := newAdminController(reg, nil, nil)

	w := httptest.NewRecorder()
	ctrl.ClearRecords(w, httptest.NewRequest(http.MethodDelete, "/api/admin/records", nil))
	if w.Code != http.StatusOK || !reg.cleared {
		t.Fatalf("clear: status %d, cleared %v", w.Code, reg.cleared)
	}

	w = httptest.NewRecorder()
	ctrl.RefreshRecords(w, httptest.NewRequest(http.MethodPost, "/api/admin/records/refresh", nil))
	if w.Code != http.StatusOK || !reg.refreshed {
		t.Fatalf("refresh: status %d, refreshed %v", w.Code, reg.refreshed)
	}
}

func TestAdminController_ExportRecords(t *testing.T) {
	reg := &mockRegistrationService{records: []*domain.Record{
		domain.NewAttendRecord("rec-1", "홍길동", "01012345678", time.Now()),
	}}
	ctrl := newAdminController(reg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/records/export", nil)
	w := httptest.NewRecorder()

	ctrl.ExportRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content-type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content-disposition = %s", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "\uFEFF") {
		t.Error("missing BOM")
	}
	if !strings.Contains(body, "홍길동") {
		t.Error("record missing from export")
	}
}

func TestAdminController_AdminCRUD(t *testing.T) {
	adm := &mockAdminService{creds: []*domain.AdminCredential{
		{ID: "adm-1", LoginID: "staff", Password: "pw", DisplayName: "행사 담당자"},
	}}
	ctrl := newAdminController(nil, adm, nil)

	w := httptest.NewRecorder()
	ctrl.ListAdmins(w, httptest.NewRequest(http.MethodGet, "/api/admin/admins", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	body := `{"login_id":"staff2","password":"pw","display_name":"보조 담당자"}`
	ctrl.CreateAdmin(w, httptest.NewRequest(http.MethodPost, "/api/admin/admins", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/admins/adm-1", strings.NewReader(body))
	req.SetPathValue("adminID", "adm-1")
	ctrl.UpdateAdmin(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/admins/adm-1", nil)
	req.SetPathValue("adminID", "adm-1")
	ctrl.DeleteAdmin(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d", w.Code)
	}
	if len(adm.removed) != 1 || adm.removed[0] != "adm-1" {
		t.Errorf("removed = %v", adm.removed)
	}
}
