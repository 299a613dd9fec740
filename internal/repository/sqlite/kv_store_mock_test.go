package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
)

func setupKVMock(t *testing.T) (repository.KeyValueStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return sqlite.NewKeyValueStore(db), mock, func() { db.Close() }
}

func TestKeyValueStore_GetQueryError(t *testing.T) {
	store, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = ?`)).
		WithArgs("classId").
		WillReturnError(errors.New("disk I/O error"))

	_, found, err := store.Get(context.Background(), "classId")

	assert.Error(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueStore_GetScansValue(t *testing.T) {
	store, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = ?`)).
		WithArgs("classId").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("7a"))

	value, found, err := store.Get(context.Background(), "classId")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "7a", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueStore_SetExecError(t *testing.T) {
	store, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key,value) VALUES (?,?) ON CONFLICT(key) DO UPDATE`)).
		WithArgs("classId", "7a").
		WillReturnError(errors.New("database is locked"))

	err := store.Set(context.Background(), "classId", "7a")

	assert.EqualError(t, err, "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}
