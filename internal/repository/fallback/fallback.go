// Package fallback decorates the remote repositories with per-call
// degradation to the local store. Every operation first attempts the remote
// store; on any failure it logs a warning and retries against the local
// fallback. The remote/local choice is made per call, never cached, so a
// transient remote outage degrades individual operations rather than the
// whole session. A fallback failure propagates to the caller.
package fallback

import (
	"context"
	"errors"
	"log/slog"

	"meetingreg/internal/domain"
)

// Recorder counts fallback activations, by entity kind and operation.
type Recorder interface {
	RecordStorageFallback(entity, op string)
}

// NopRecorder is a Recorder that does nothing. Useful in tests.
type NopRecorder struct{}

func (NopRecorder) RecordStorageFallback(entity, op string) {}

func warn(ctx context.Context, logger *slog.Logger, entity, op string, err error) {
	logger.WarnContext(ctx, "remote store failed, using local fallback",
		"entity", entity, "op", op, "err", err)
}

type recordRepository struct {
	primary  domain.RecordRepository
	local    domain.RecordRepository
	logger   *slog.Logger
	recorder Recorder
}

// NewRecordRepository wraps the remote record repository with the local one.
func NewRecordRepository(primary, local domain.RecordRepository, logger *slog.Logger, recorder Recorder) domain.RecordRepository {
	return &recordRepository{primary: primary, local: local, logger: logger, recorder: recorder}
}

func (r *recordRepository) Save(ctx context.Context, record *domain.Record) error {
	if err := r.primary.Save(ctx, record); err != nil {
		warn(ctx, r.logger, "records", "save", err)
		r.recorder.RecordStorageFallback("records", "save")
		return r.local.Save(ctx, record)
	}
	return nil
}

func (r *recordRepository) List(ctx context.Context) ([]*domain.Record, error) {
	records, err := r.primary.List(ctx)
	if err != nil {
		warn(ctx, r.logger, "records", "list", err)
		r.recorder.RecordStorageFallback("records", "list")
		return r.local.List(ctx)
	}
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, id string) error {
	if err := r.primary.Delete(ctx, id); err != nil {
		warn(ctx, r.logger, "records", "delete", err)
		r.recorder.RecordStorageFallback("records", "delete")
		return r.local.Delete(ctx, id)
	}
	return nil
}

func (r *recordRepository) DeleteAll(ctx context.Context) error {
	if err := r.primary.DeleteAll(ctx); err != nil {
		warn(ctx, r.logger, "records", "delete_all", err)
		r.recorder.RecordStorageFallback("records", "delete_all")
		return r.local.DeleteAll(ctx)
	}
	return nil
}

type settingsRepository struct {
	primary  domain.SettingsRepository
	local    domain.SettingsRepository
	logger   *slog.Logger
	recorder Recorder
}

// NewSettingsRepository wraps the remote settings repository with the local one.
func NewSettingsRepository(primary, local domain.SettingsRepository, logger *slog.Logger, recorder Recorder) domain.SettingsRepository {
	return &settingsRepository{primary: primary, local: local, logger: logger, recorder: recorder}
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	if err := r.primary.Save(ctx, settings); err != nil {
		warn(ctx, r.logger, "settings", "save", err)
		r.recorder.RecordStorageFallback("settings", "save")
		return r.local.Save(ctx, settings)
	}
	return nil
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := r.primary.Get(ctx)
	if err != nil {
		// Absence is a valid answer from a reachable store, not a failure.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		warn(ctx, r.logger, "settings", "get", err)
		r.recorder.RecordStorageFallback("settings", "get")
		return r.local.Get(ctx)
	}
	return settings, nil
}

type adminRepository struct {
	primary  domain.AdminRepository
	local    domain.AdminRepository
	logger   *slog.Logger
	recorder Recorder
}

// NewAdminRepository wraps the remote admin repository with the local one.
func NewAdminRepository(primary, local domain.AdminRepository, logger *slog.Logger, recorder Recorder) domain.AdminRepository {
	return &adminRepository{primary: primary, local: local, logger: logger, recorder: recorder}
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.AdminCredential, error) {
	creds, err := r.primary.List(ctx)
	if err != nil {
		warn(ctx, r.logger, "admins", "list", err)
		r.recorder.RecordStorageFallback("admins", "list")
		return r.local.List(ctx)
	}
	return creds, nil
}

func (r *adminRepository) Save(ctx context.Context, cred *domain.AdminCredential) error {
	if err := r.primary.Save(ctx, cred); err != nil {
		warn(ctx, r.logger, "admins", "save", err)
		r.recorder.RecordStorageFallback("admins", "save")
		return r.local.Save(ctx, cred)
	}
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	if err := r.primary.Delete(ctx, id); err != nil {
		warn(ctx, r.logger, "admins", "delete", err)
		r.recorder.RecordStorageFallback("admins", "delete")
		return r.local.Delete(ctx, id)
	}
	return nil
}
