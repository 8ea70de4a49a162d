package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"meetingreg/internal/domain"
)

// settingsID is the fixed key of the settings singleton (logical path
// settings/config).
const settingsID = "config"

type settingsRepository struct {
	DB *sql.DB
}

// NewSettingsRepository returns a SettingsRepository backed by PostgreSQL.
// The singleton is stored as a JSONB document so CMS saves stay a single
// upsert regardless of the field set.
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
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`
	_, err = r.DB.ExecContext(ctx, query, settingsID, payload)
	return err
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT payload FROM settings WHERE id = $1`
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, settingsID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	settings := &domain.Settings{}
	if err := json.Unmarshal(payload, settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}
