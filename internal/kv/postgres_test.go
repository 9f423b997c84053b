package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("user:1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"1"}`)))

	value, err := store.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_store`).
		WithArgs("user:404").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), "user:404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO kv_store .* ON CONFLICT \(key\) DO UPDATE SET value = EXCLUDED.value`).
		WithArgs("user:1", `{"id":"1"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Set(context.Background(), "user:1", []byte(`{"id":"1"}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("session:abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, store.Delete(context.Background(), "session:abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetByPrefix(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT key, value FROM kv_store WHERE starts_with\(key, \$1\) ORDER BY key`).
		WithArgs("progress:u1:").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
			AddRow("progress:u1:a", []byte(`{"module_id":"a"}`)).
			AddRow("progress:u1:b", []byte(`{"module_id":"b"}`)))

	entries, err := store.GetByPrefix(context.Background(), "progress:u1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "progress:u1:a", entries[0].Key)
	assert.JSONEq(t, `{"module_id":"b"}`, string(entries[1].Value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePropagatesErrors(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT key, value FROM kv_store`).
		WithArgs("user:").
		WillReturnError(errors.New("connection reset"))

	_, err := store.GetByPrefix(context.Background(), "user:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
