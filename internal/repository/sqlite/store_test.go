package sqlite

import (
	"context"
	"testing"
	"time"

	"meetingreg/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRecordRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecordRepository(db)
	submittedAt := time.Date(2026, 2, 21, 10, 30, 0, 123456000, time.UTC)

	attend := domain.NewAttendRecord("rec-1", "홍길동", "01012345678", submittedAt)
	proxy := domain.NewProxyRecord("rec-2", "김철수", "0212345678",
		domain.DelegatePresident, domain.PresidentDelegateName, "sig-data", submittedAt.Add(time.Minute))

	require.NoError(t, repo.Save(ctx, attend))
	require.NoError(t, repo.Save(ctx, proxy))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := map[string]*domain.Record{}
	for _, r := range records {
		byID[r.ID] = r
	}
	require.Equal(t, "홍길동", byID["rec-1"].Name)
	require.True(t, byID["rec-1"].SubmittedAt.Equal(submittedAt))
	require.True(t, byID["rec-1"].AgreedToPolicy)
	require.Equal(t, domain.KindProxy, byID["rec-2"].Kind)
	require.Equal(t, domain.PresidentDelegateName, byID["rec-2"].DelegateName)
	require.Equal(t, "sig-data", byID["rec-2"].Signature)
}

func TestRecordRepository_SaveOverwritesByID(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecordRepository(db)
	submittedAt := time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, domain.NewAttendRecord("rec-1", "홍길동", "01012345678", submittedAt)))
	// Same ID, now a proxy: the identity key stays stable across kind changes.
	require.NoError(t, repo.Save(ctx, domain.NewProxyRecord("rec-1", "홍길동", "01012345678",
		domain.DelegateOther, "이영희", "sig", submittedAt.Add(time.Hour))))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.KindProxy, records[0].Kind)
	require.Equal(t, "이영희", records[0].DelegateName)
}

func TestRecordRepository_DeleteAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecordRepository(db)
	submittedAt := time.Now()
	require.NoError(t, repo.Save(ctx, domain.NewAttendRecord("rec-1", "홍길동", "01012345678", submittedAt)))
	require.NoError(t, repo.Save(ctx, domain.NewAttendRecord("rec-2", "김철수", "01087654321", submittedAt)))

	require.NoError(t, repo.Delete(ctx, "rec-1"))
	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, repo.DeleteAll(ctx))
	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
	require.NotNil(t, records)
}

func TestSettingsRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSettingsRepository(db)

	_, err = repo.Get(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	settings := domain.DefaultSettings()
	settings.Title = "정기총회 참석 등록"
	require.NoError(t, repo.Save(ctx, settings))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settings, got)

	// Second save overwrites the singleton.
	settings.Title = "임시총회"
	require.NoError(t, repo.Save(ctx, settings))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "임시총회", got.Title)
}

func TestAdminRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewAdminRepository(db)

	creds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, creds)

	cred := &domain.AdminCredential{LoginID: "staff", Password: "pw", DisplayName: "행사 담당자"}
	require.NoError(t, repo.Save(ctx, cred))
	require.NotEmpty(t, cred.ID)

	cred.Password = "pw2"
	require.NoError(t, repo.Save(ctx, cred))

	creds, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.Equal(t, "pw2", creds[0].Password)

	require.NoError(t, repo.Delete(ctx, cred.ID))
	creds, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, creds)
}
