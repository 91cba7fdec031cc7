package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPostgres connects to ITRCALC_TEST_POSTGRES_DSN or skips.
func openTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("ITRCALC_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ITRCALC_TEST_POSTGRES_DSN not set")
	}
	db, err := OpenPostgres(dsn)
	require.NoError(t, err)
	s := NewPostgresStore(db, nil)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgresStore_CRUD(t *testing.T) {
	s := openTestPostgres(t)
	ctx := context.Background()
	user := "pg-" + uuid.NewString()

	rec := newRecord(user, "2025-2026", 20800)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, user, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "20800.00", got.Result.NewRegimeTax.String())
	assert.Equal(t, "2025-2026", got.Request.Profile.FinancialYear)

	_, err = s.Get(ctx, "someone-else", rec.ID)
	assert.True(t, ierr.IsNotFound(err))

	update := newRecord(user, "2024-2025", 17500)
	update.ID = rec.ID
	require.NoError(t, s.Update(ctx, update))
	assert.True(t, update.CreatedAt.Equal(rec.CreatedAt))

	list, err := s.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-2025", list[0].FinancialYear)

	require.NoError(t, s.Delete(ctx, user, rec.ID))
	assert.True(t, ierr.IsNotFound(s.Delete(ctx, user, rec.ID)))
}

func TestFromRow_RejectsCorruptJSON(t *testing.T) {
	_, err := fromRow(recordRow{
		ID:      uuid.New(),
		Request: types.JSONText(`{"profile":`),
		Result:  types.JSONText(`{}`),
	})
	require.Error(t, err)
	assert.Equal(t, 500, ierr.HTTPStatusFromErr(err))
}
