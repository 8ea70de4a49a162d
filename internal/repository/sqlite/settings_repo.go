package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"meetingreg/internal/domain"
)

const settingsID = "config"

type settingsRepository struct {
	DB *sql.DB
}

// NewSettingsRepository returns a SettingsRepository backed by the local
// SQLite fallback store. The singleton is stored as a JSON document, same as
// the remote store.
func NewSettingsRepository(db *sql.DB) domain.SettingsRepository {
	return &settingsRepository{
		DB: db,
	}
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	query := `
		INSERT INTO settings (id, payload)
		VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`
	_, err = r.DB.ExecContext(ctx, query, settingsID, string(payload))
	return err
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT payload FROM settings WHERE id = ?`
	var payload string
	err := r.DB.QueryRowContext(ctx, query, settingsID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	settings := &domain.Settings{}
	if err := json.Unmarshal([]byte(payload), settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}
