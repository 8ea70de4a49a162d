package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meetingreg/internal/domain"
)

type recordRepository struct {
	DB *sql.DB
}

// NewRecordRepository returns a RecordRepository backed by the local SQLite
// fallback store.
func NewRecordRepository(db *sql.DB) domain.RecordRepository {
	return &recordRepository{
		DB: db,
	}
}

func (r *recordRepository) Save(ctx context.Context, record *domain.Record) error {
	query := `
		INSERT INTO records (id, name, phone, kind, submitted_at, agreed_to_policy, delegate_kind, delegate_name, signature)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			kind = excluded.kind,
			submitted_at = excluded.submitted_at,
			agreed_to_policy = excluded.agreed_to_policy,
			delegate_kind = excluded.delegate_kind,
			delegate_name = excluded.delegate_name,
			signature = excluded.signature
	`
	agreed := 0
	if record.AgreedToPolicy {
		agreed = 1
	}
	_, err := r.DB.ExecContext(ctx, query,
		record.ID, record.Name, record.Phone, string(record.Kind),
		record.SubmittedAt.UTC().Format(time.RFC3339Nano),
		agreed, string(record.DelegateKind), record.DelegateName, record.Signature)
	return err
}

func (r *recordRepository) List(ctx context.Context) ([]*domain.Record, error) {
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
		var kind, delegateKind, submittedAt string
		var agreed int
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Phone, &kind, &submittedAt,
			&agreed, &delegateKind, &rec.DelegateName, &rec.Signature); err != nil {
			return nil, err
		}
		rec.Kind = domain.RecordKind(kind)
		rec.DelegateKind = domain.DelegateKind(delegateKind)
		rec.AgreedToPolicy = agreed != 0
		rec.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("parse submitted_at for record %s: %w", rec.ID, err)
		}
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
	query := `DELETE FROM records WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *recordRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM records`
	_, err := r.DB.ExecContext(ctx, query)
	return err
}
