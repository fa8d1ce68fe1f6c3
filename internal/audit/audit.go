// Package audit records one row per tokenize request: source hash, source
// length, token count, whether scanning errored, and latency. It supports
// a SQLite-backed store (the default, for local/dev runs of "jsscan serve")
// and a Postgres-backed store (for production deployments), both through
// database/sql so the query layer is shared.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one audited tokenize request.
type Record struct {
	ID          string
	RequestID   string
	SourceHash  string
	SourceBytes int
	TokenCount  int
	Errored     bool
	ErrorCode   string
	DurationMs  float64
	CreatedAt   time.Time
}

// Store persists audit records.
type Store interface {
	Record(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// sqlStore implements Store over database/sql, parameterized only by the
// placeholder syntax (SQLite's "?" vs Postgres's "$n").
type sqlStore struct {
	db            *sql.DB
	placeholderFn func(n int) string
}

// NewRecord builds a Record with a fresh ID and CreatedAt stamped by the
// caller (the scanner/cache layers never touch time.Now directly; the
// service handler stamps requests at the edge).
func NewRecord(requestID, sourceHash string, sourceBytes, tokenCount int, errored bool, errorCode string, durationMs float64, createdAt time.Time) Record {
	return Record{
		ID:          uuid.New().String(),
		RequestID:   requestID,
		SourceHash:  sourceHash,
		SourceBytes: sourceBytes,
		TokenCount:  tokenCount,
		Errored:     errored,
		ErrorCode:   errorCode,
		DurationMs:  durationMs,
		CreatedAt:   createdAt,
	}
}

// NewStoreForDB wraps an already-open *sql.DB as a Store, used by tests
// against a sqlmock connection. placeholderStyle is "sqlite" or "postgres".
func NewStoreForDB(db *sql.DB, placeholderStyle string) Store {
	switch placeholderStyle {
	case "postgres":
		return &sqlStore{db: db, placeholderFn: func(n int) string { return fmt.Sprintf("$%d", n) }}
	default:
		return &sqlStore{db: db, placeholderFn: func(int) string { return "?" }}
	}
}

func (s *sqlStore) Record(ctx context.Context, rec Record) error {
	query := fmt.Sprintf(
		`INSERT INTO audit_log (id, request_id, source_hash, source_bytes, token_count, errored, error_code, duration_ms, created_at)
		 VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		s.placeholderFn(1), s.placeholderFn(2), s.placeholderFn(3), s.placeholderFn(4),
		s.placeholderFn(5), s.placeholderFn(6), s.placeholderFn(7), s.placeholderFn(8), s.placeholderFn(9),
	)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.RequestID, rec.SourceHash, rec.SourceBytes, rec.TokenCount,
		rec.Errored, rec.ErrorCode, rec.DurationMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

func (s *sqlStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := fmt.Sprintf(
		`SELECT id, request_id, source_hash, source_bytes, token_count, errored, error_code, duration_ms, created_at
		 FROM audit_log ORDER BY created_at DESC LIMIT %s`, s.placeholderFn(1))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.RequestID, &r.SourceHash, &r.SourceBytes,
			&r.TokenCount, &r.Errored, &r.ErrorCode, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

const createTableSQLite = `
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	source_bytes INTEGER NOT NULL,
	token_count INTEGER NOT NULL,
	errored BOOLEAN NOT NULL,
	error_code TEXT NOT NULL DEFAULT '',
	duration_ms REAL NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

const createTablePostgres = `
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	source_bytes INTEGER NOT NULL,
	token_count INTEGER NOT NULL,
	errored BOOLEAN NOT NULL,
	error_code TEXT NOT NULL DEFAULT '',
	duration_ms DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`
