package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meetingreg/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository_Save(t *testing.T) {
	ctx := context.Background()
	submittedAt := time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  *domain.Record
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name:   "attend record",
			record: domain.NewAttendRecord("rec-1", "홍길동", "01012345678", submittedAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).
					WithArgs("rec-1", "홍길동", "01012345678", "ATTEND", submittedAt, true, "", "", "").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "proxy record",
			record: domain.NewProxyRecord("rec-2", "김철수", "0212345678",
				domain.DelegateOther, "이영희", "data:image/png;base64,AAA", submittedAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).
					WithArgs("rec-2", "김철수", "0212345678", "PROXY", submittedAt, true,
						"OTHER", "이영희", "data:image/png;base64,AAA").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "db error",
			record: domain.NewAttendRecord("rec-3", "홍길동", "01012345678", submittedAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRecordRepository(db)

			err = repo.Save(ctx, tt.record)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecordRepository_List(t *testing.T) {
	ctx := context.Background()
	submittedAt := time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC)

	columns := []string{"id", "name", "phone", "kind", "submitted_at", "agreed_to_policy", "delegate_kind", "delegate_name", "signature"}

	t.Run("returns records", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, phone, kind, submitted_at, agreed_to_policy, delegate_kind, delegate_name, signature`).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("rec-1", "홍길동", "01012345678", "ATTEND", submittedAt, true, "", "", "").
				AddRow("rec-2", "김철수", "0212345678", "PROXY", submittedAt, true, "PRESIDENT", "협회장", "sig"))

		repo := NewRecordRepository(db)
		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, domain.KindAttend, records[0].Kind)
		require.Equal(t, domain.KindProxy, records[1].Kind)
		require.Equal(t, domain.DelegatePresident, records[1].DelegateKind)
		require.Equal(t, "협회장", records[1].DelegateName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, phone, kind`).
			WillReturnRows(sqlmock.NewRows(columns))

		repo := NewRecordRepository(db)
		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, records)
		require.Empty(t, records)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, phone, kind`).
			WillReturnError(sql.ErrConnDone)

		repo := NewRecordRepository(db)
		_, err = repo.List(ctx)
		require.Error(t, err)
	})
}

func TestRecordRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM records WHERE id`).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRecordRepository(db)
	require.NoError(t, repo.Delete(ctx, "rec-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM records`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewRecordRepository(db)
	require.NoError(t, repo.DeleteAll(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}
