package postgres

import (
	"context"
	"database/sql"

	"meetingreg/internal/domain"
)

type recordRepository struct {
	DB *sql.DB
}

// NewRecordRepository returns a RecordRepository backed by PostgreSQL, the
// remote synchronized store.
func NewRecordRepository(db *sql.DB) domain.RecordRepository {
	return &recordRepository{
		DB: db,
	}
}

func (r *recordRepository) Save(ctx context.Context, record *domain.Record) error {
	query := `
		INSERT INTO records (id, name, phone, kind, submitted_at, agreed_to_policy, delegate_kind, delegate_name, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			kind = EXCLUDED.kind,
			submitted_at = EXCLUDED.submitted_at,
			agreed_to_policy = EXCLUDED.agreed_to_policy,
			delegate_kind = EXCLUDED.delegate_kind,
			delegate_name = EXCLUDED.delegate_name,
			signature = EXCLUDED.signature
	`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID, record.Name, record.Phone, string(record.Kind), record.SubmittedAt,
		record.AgreedToPolicy, string(record.DelegateKind), record.DelegateName, record.Signature)
	return err
}

func (r *recordRepository) List(ctx context.Context) ([]*domain.Record, error) {
	// Unordered by contract; latest-first sorting is the caller's concern.
	query := `
		SELECT id, name, phone, kind, submitted_at, agreed_to_policy, delegate_kind, delegate_name, signature
		FROM records
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		rec := &domain.Record{}
		var kind, delegateKind string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Phone, &kind, &rec.SubmittedAt,
			&rec.AgreedToPolicy, &delegateKind, &rec.DelegateName, &rec.Signature); err != nil {
			return nil, err
		}
		rec.Kind = domain.RecordKind(kind)
		rec.DelegateKind = domain.DelegateKind(delegateKind)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.Record{}
	}
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM records WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *recordRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM records`
	_, err := r.DB.ExecContext(ctx, query)
	return err
}
