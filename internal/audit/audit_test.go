package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInsertsExpectedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreForDB(db, "sqlite")
	rec := NewRecord("req-1", "abc123", 42, 7, false, "", 1.5, time.Now())

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(rec.ID, rec.RequestID, rec.SourceHash, rec.SourceBytes, rec.TokenCount,
			rec.Errored, rec.ErrorCode, rec.DurationMs, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentReturnsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreForDB(db, "sqlite")
	now := time.Now()

	mock.ExpectQuery("SELECT id, request_id").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "source_hash", "source_bytes", "token_count",
			"errored", "error_code", "duration_ms", "created_at",
		}).AddRow("id-1", "req-1", "hash-1", 10, 3, false, "", 0.4, now))

	recs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "req-1", recs[0].RequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatalf("expected an error for an unsupported driver")
	}
}
