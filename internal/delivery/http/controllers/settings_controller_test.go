package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetingreg/internal/domain"
)

type mockSettingsService struct {
	settings *domain.Settings
	err      error
	updated  *domain.Settings
}

func (m *mockSettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	return domain.DefaultSettings(), nil
}

func (m *mockSettingsService) Update(ctx context.Context, settings *domain.Settings) error {
	if m.err != nil {
		return m.err
	}
	m.updated = settings
	return nil
}

func TestSettingsController_GetSettings(t *testing.T) {
	ctrl := NewSettingsController(testLogger(), &mockSettingsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()

	ctrl.GetSettings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp SettingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Title != domain.DefaultSettings().Title {
		t.Errorf("title = %s", resp.Data.Title)
	}
}

func TestSettingsController_UpdateSettings(t *testing.T) {
	svc := &mockSettingsService{}
	ctrl := NewSettingsController(testLogger(), svc)

	payload, err := json.Marshal(domain.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(string(payload)))
	w := httptest.NewRecorder()

	ctrl.UpdateSettings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.updated == nil {
		t.Fatal("Update was not called")
	}
}

func TestSettingsController_UpdateSettings_UnknownFieldRejected(t *testing.T) {
	ctrl := NewSettingsController(testLogger(), &mockSettingsService{})

	// The field set is closed; the CMS cannot introduce keys.
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{"title":"x","bogus":"y"}`))
	w := httptest.NewRecorder()

	ctrl.UpdateSettings(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
