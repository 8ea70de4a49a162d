// @title Meeting Registration API
// @version 1.0
// @description Attendance and proxy registration for a general meeting, with an admin console for records and page content.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"meetingreg/config"
	"meetingreg/internal/adapters/auth"
	"meetingreg/internal/database"
	httpdelivery "meetingreg/internal/delivery/http"
	"meetingreg/internal/delivery/http/controllers"
	"meetingreg/internal/delivery/http/middleware"
	"meetingreg/internal/domain"
	"meetingreg/internal/metrics"
	"meetingreg/internal/repository/fallback"
	"meetingreg/internal/repository/postgres"
	"meetingreg/internal/repository/sqlite"
	"meetingreg/internal/services"
	"meetingreg/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	// Local SQLite store. This must open: it is the floor the service
	// degrades to when PostgreSQL is unreachable.
	localDB, err := sqlite.Open(cfg.FallbackDBPath)
	if err != nil {
		logger.Error("fallback store unavailable", "path", cfg.FallbackDBPath, "err", err)
		os.Exit(1)
	}
	defer localDB.Close()

	// Remote PostgreSQL store. Failure here is survivable; every repository
	// call retries against the local store on its own.
	var remoteDB *sql.DB
	if db, err := database.Open(cfg.DBUrl); err != nil {
		logger.Warn("postgres unavailable, serving from local store", "err", err)
	} else {
		remoteDB = db
		defer remoteDB.Close()
		if err := database.RunMigrations(cfg.DBUrl); err != nil {
			logger.Warn("migrations failed", "err", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	var recordRepo domain.RecordRepository = sqlite.NewRecordRepository(localDB)
	var settingsRepo domain.SettingsRepository = sqlite.NewSettingsRepository(localDB)
	var adminRepo domain.AdminRepository = sqlite.NewAdminRepository(localDB)
	if remoteDB != nil {
		recordRepo = fallback.NewRecordRepository(postgres.NewRecordRepository(remoteDB), recordRepo, logger, collector)
		settingsRepo = fallback.NewSettingsRepository(postgres.NewSettingsRepository(remoteDB), settingsRepo, logger, collector)
		adminRepo = fallback.NewAdminRepository(postgres.NewAdminRepository(remoteDB), adminRepo, logger, collector)
	}

	store := state.NewRecordStore(recordRepo, logger)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := store.Refresh(ctx); err != nil {
			logger.Warn("initial record load failed, starting empty", "err", err)
		}
		cancel()
	}

	settingsService := services.NewSettingsService(settingsRepo)
	registrationService := services.NewRegistrationService(store, settingsService, logger, collector)
	adminService := services.NewAdminService(adminRepo)
	tokens := auth.NewJWTManager(cfg.JWTSecret)

	limiter := middleware.NewSubmitLimiter(rate.Limit(2), 5)

	mux := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:        logger,
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Settings:      controllers.NewSettingsController(logger, settingsService),
		Admin:         controllers.NewAdminController(logger, registrationService, adminService, tokens),
		Verifier:      tokens,
		Limiter:       limiter,
		Registry:      registry,
	})

	handler := middleware.CORS(cfg.AllowedOrigins,
		middleware.LoggingMiddleware(logger, collector, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "err", err)
			server.Close()
		}
	}()

	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
