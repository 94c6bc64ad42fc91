package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"value"}).AddRow("octocat")

	mock.ExpectQuery("SELECT value FROM session_store").
		WithArgs("username").
		WillReturnRows(rows)

	store := &PostgresStore{db: mockDB}
	value, err := store.Get(context.Background(), "username")

	assert.NoError(t, err)
	assert.Equal(t, "octocat", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_KeyNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT value FROM session_store").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	store := &PostgresStore{db: mockDB}
	_, err = store.Get(context.Background(), "missing")

	assert.Error(t, err)
	assert.True(t, errors.IsRef(err, errors.RefStoreNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO session_store").
		WithArgs("token", "ghp_secret").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &PostgresStore{db: mockDB}
	err = store.Set(context.Background(), "token", "ghp_secret")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_Idempotent(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO session_store").
		WithArgs("fetchCount", "50").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO session_store").
		WithArgs("fetchCount", "50").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &PostgresStore{db: mockDB}
	require.NoError(t, store.Set(context.Background(), "fetchCount", "50"))
	require.NoError(t, store.Set(context.Background(), "fetchCount", "50"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("DELETE FROM session_store").
		WithArgs("data").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &PostgresStore{db: mockDB}
	err = store.Delete(context.Background(), "data")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_QueryError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT value FROM session_store").
		WithArgs("username").
		WillReturnError(assert.AnError)

	store := &PostgresStore{db: mockDB}
	_, err = store.Get(context.Background(), "username")

	assert.Error(t, err)
	assert.True(t, errors.IsRef(err, errors.RefStoreError))
	assert.NoError(t, mock.ExpectationsWereMet())
}
