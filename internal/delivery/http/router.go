package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"meetingreg/internal/delivery/http/controllers"
	"meetingreg/internal/delivery/http/middleware"
	"meetingreg/internal/domain"
	"meetingreg/internal/metrics"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Logger        *slog.Logger
	Registrations *controllers.RegistrationController
	Settings      *controllers.SettingsController
	Admin         *controllers.AdminController
	Verifier      domain.TokenVerifier
	Limiter       *middleware.SubmitLimiter
	Registry      *prometheus.Registry
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	requireAdmin := middleware.RequireAdmin(deps.Verifier, deps.Logger)
	limited := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if deps.Limiter != nil {
		limited = deps.Limiter.Middleware
	}

	// Public registration surface.
	mux.HandleFunc("GET /api/settings", deps.Settings.GetSettings)
	mux.HandleFunc("POST /api/registrations/attend", limited(deps.Registrations.SubmitAttend))
	mux.HandleFunc("POST /api/registrations/proxy/check", limited(deps.Registrations.CheckProxy))
	mux.HandleFunc("POST /api/registrations/proxy", limited(deps.Registrations.SubmitProxy))

	// Admin surface.
	mux.HandleFunc("POST /api/admin/login", deps.Admin.Login)
	mux.HandleFunc("GET /api/admin/records", requireAdmin(deps.Admin.ListRecords))
	mux.HandleFunc("POST /api/admin/records/delete", requireAdmin(deps.Admin.DeleteRecords))
	mux.HandleFunc("DELETE /api/admin/records", requireAdmin(deps.Admin.ClearRecords))
	mux.HandleFunc("POST /api/admin/records/refresh", requireAdmin(deps.Admin.RefreshRecords))
	mux.HandleFunc("GET /api/admin/records/export", requireAdmin(deps.Admin.ExportRecords))
	mux.HandleFunc("GET /api/admin/settings", requireAdmin(deps.Settings.GetSettings))
	mux.HandleFunc("PUT /api/admin/settings", requireAdmin(deps.Settings.UpdateSettings))
	mux.HandleFunc("GET /api/admin/admins", requireAdmin(deps.Admin.ListAdmins))
	mux.HandleFunc("POST /api/admin/admins", requireAdmin(deps.Admin.CreateAdmin))
	mux.HandleFunc("PUT /api/admin/admins/{adminID}", requireAdmin(deps.Admin.UpdateAdmin))
	mux.HandleFunc("DELETE /api/admin/admins/{adminID}", requireAdmin(deps.Admin.DeleteAdmin))

	// Operational endpoints.
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Registry != nil {
		mux.Handle("GET /metrics", metrics.Handler(deps.Registry))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
