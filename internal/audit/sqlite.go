package audit

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (creating if necessary) a SQLite-backed audit store at
// the given path.
func OpenSQLite(dsn string) (Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open sqlite: %w", err)
	}
	if _, err := db.Exec(createTableSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate sqlite: %w", err)
	}
	return &sqlStore{db: db, placeholderFn: func(int) string { return "?" }}, nil
}
