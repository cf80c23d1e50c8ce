package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB);`)
	require.NoError(t, err)
	return db
}

func TestSetGetUpsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDeleteClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB}))

	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))
	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBB}, v)

	require.NoError(t, r.Clear(ctx))
	v, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDBErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT value FROM metadata`).WithArgs("k").WillReturnError(boom)
	_, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to get metadata[k]")

	mock.ExpectExec(`INSERT INTO metadata`).WithArgs("k", []byte("v")).WillReturnError(boom)
	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")

	mock.ExpectExec(`DELETE FROM metadata WHERE key`).WithArgs("k").WillReturnError(boom)
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")

	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(boom)
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore(t *testing.T) {
	store := NewTokenStore(NewSQLiteRepository(setupDB(t)))
	ctx := context.Background()

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.SetToken(ctx, "  abc.def.ghi \n"))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, store.SetToken(ctx, "   "))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.SetToken(ctx, "again"))
	require.NoError(t, store.ClearToken(ctx))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
