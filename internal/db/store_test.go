package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsweeper/internal/address"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn), mock
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS raw_address").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS raw_address_status_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS parsed_address").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS raw_address").WillReturnError(errors.New("permission denied"))

	err := store.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestImport(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	copyStmt := mock.ExpectPrepare(`COPY "raw_address" \("address"\) FROM STDIN`)
	copyStmt.ExpectExec().WithArgs("1005 Gravenstein Hwy 95472").WillReturnResult(sqlmock.NewResult(0, 1))
	copyStmt.ExpectExec().WithArgs("Mission & Valencia").WillReturnResult(sqlmock.NewResult(0, 1))
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := store.Import(context.Background(), []string{"1005 Gravenstein Hwy 95472", "", "Mission & Valencia"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRollsBackOnCopyError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	copyStmt := mock.ExpectPrepare(`COPY "raw_address"`)
	copyStmt.ExpectExec().WithArgs("bad").WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := store.Import(context.Background(), []string{"bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPending(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "address"}).
		AddRow(int64(1), "1005 Gravenstein Hwy 95472").
		AddRow(int64(2), "Mission & Valencia")
	mock.ExpectQuery("SELECT id, address FROM raw_address WHERE status = \\$1").
		WithArgs(StatusPending, 10).
		WillReturnRows(rows)

	got, err := store.Pending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []RawAddress{
		{ID: 1, Address: "1005 Gravenstein Hwy 95472"},
		{ID: 2, Address: "Mission & Valencia"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveParsed(t *testing.T) {
	store, mock := newMockStore(t)

	a := address.Address{
		Number: "1005", Street: "Gravenstein", StreetType: "Hwy",
		City: "Sebastopol", State: "CA", PostalCode: "95472",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO parsed_address").
		WithArgs(int64(7), "1005", nil, "Gravenstein", "Hwy", nil, nil, nil,
			"Sebastopol", "CA", "95472", nil,
			nil, nil, nil, nil,
			false, "1005 Gravenstein Hwy", "Sebastopol, CA 95472").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE raw_address SET status").
		WithArgs(StatusParsed, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SaveParsed(context.Background(), 7, a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveParsedMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO parsed_address").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE raw_address SET status").
		WithArgs(StatusParsed, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.SaveParsed(context.Background(), 99, address.Address{Street: "Main"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkUnmatched(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE raw_address SET status").
		WithArgs(StatusUnmatched, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.MarkUnmatched(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(StatusParsed, 40).
			AddRow(StatusUnmatched, 2))

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{StatusParsed: 40, StatusUnmatched: 2}, counts)
}
