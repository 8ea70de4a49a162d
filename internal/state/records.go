// Package state holds the in-memory submission record cache. The cache is the
// single owner of the live Record collection for the process lifetime; it is
// kept consistent with the storage adapter via optimistic updates and serves
// duplicate checks without a storage round trip.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"meetingreg/internal/domain"
)

// RecordStore caches all submission records. Updates are optimistic: the
// cache changes before the persist call completes, so a read immediately
// after Add sees the new record even if the underlying write is still in
// flight or fails.
type RecordStore struct {
	repo   domain.RecordRepository
	logger *slog.Logger

	mu      sync.RWMutex
	records []*domain.Record
	loading bool
}

// NewRecordStore returns an empty store. Call Refresh to load the persisted
// collection.
func NewRecordStore(repo domain.RecordRepository, logger *slog.Logger) *RecordStore {
	return &RecordStore{
		repo:   repo,
		logger: logger,
	}
}

// Add replaces the cached record with the same ID, or appends, then persists
// through the storage adapter. On persist failure the cache is NOT rolled
// back: the optimistic state stands and the error is returned for the caller
// to surface.
func (s *RecordStore) Add(ctx context.Context, record *domain.Record) error {
	s.mu.Lock()
	replaced := false
	for i, r := range s.records {
		if r.ID == record.ID {
			s.records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		s.records = append(s.records, record)
	}
	s.mu.Unlock()

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "persist record failed after optimistic add", "id", record.ID, "err", err)
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// RemoveMany drops the given IDs from the cache, then deletes them through
// the adapter. On any delete failure it refreshes the cache from storage so
// the displayed state matches what is actually persisted.
func (s *RecordStore) RemoveMany(ctx context.Context, ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	kept := s.records[:0]
	for _, r := range s.records {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.mu.Unlock()

	var deleteErr error
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			deleteErr = fmt.Errorf("delete record %s: %w", id, err)
			break
		}
	}
	if deleteErr != nil {
		s.logger.ErrorContext(ctx, "bulk delete failed, refreshing", "err", deleteErr)
		if err := s.Refresh(ctx); err != nil {
			s.logger.ErrorContext(ctx, "refresh after failed delete failed", "err", err)
		}
		return deleteErr
	}
	return nil
}

// Clear empties the cache, then deletes everything through the adapter. On
// failure it refreshes, like RemoveMany.
func (s *RecordStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.ErrorContext(ctx, "clear failed, refreshing", "err", err)
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			s.logger.ErrorContext(ctx, "refresh after failed clear failed", "err", refreshErr)
		}
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Refresh fully replaces the cache with the adapter's current view, toggling
// the loading flag around the call.
func (s *RecordStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	records, err := s.repo.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.records = records
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	return nil
}

// Records returns a snapshot of the cached collection, unordered.
func (s *RecordStore) Records() []*domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// FindByPhone returns the first cached record with the given phone. Phone is
// the durable identity anchor: at most one record exists per phone, so a
// linear scan over the small collection is enough.
func (s *RecordStore) FindByPhone(phone string) (*domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.Phone == phone {
			return r, true
		}
	}
	return nil, false
}

// Loading reports whether a Refresh is in flight, for UI gating.
func (s *RecordStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
