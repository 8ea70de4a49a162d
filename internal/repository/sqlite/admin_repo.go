package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"meetingreg/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

// NewAdminRepository returns an AdminRepository backed by the local SQLite
// fallback store.
func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{
		DB: db,
	}
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.AdminCredential, error) {
	query := `SELECT id, login_id, password, display_name FROM admins`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []*domain.AdminCredential
	for rows.Next() {
		cred := &domain.AdminCredential{}
		if err := rows.Scan(&cred.ID, &cred.LoginID, &cred.Password, &cred.DisplayName); err != nil {
			return nil, err
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if creds == nil {
		creds = []*domain.AdminCredential{}
	}
	return creds, nil
}

func (r *adminRepository) Save(ctx context.Context, cred *domain.AdminCredential) error {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	query := `
		INSERT INTO admins (id, login_id, password, display_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			login_id = excluded.login_id,
			password = excluded.password,
			display_name = excluded.display_name
	`
	_, err := r.DB.ExecContext(ctx, query, cred.ID, cred.LoginID, cred.Password, cred.DisplayName)
	return err
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM admins WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
