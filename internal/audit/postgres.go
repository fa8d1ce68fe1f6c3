package audit

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres opens (creating if necessary) a Postgres-backed audit store
// using the pgx database/sql driver.
func OpenPostgres(dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open postgres: %w", err)
	}
	if _, err := db.Exec(createTablePostgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate postgres: %w", err)
	}
	return &sqlStore{db: db, placeholderFn: func(n int) string { return fmt.Sprintf("$%d", n) }}, nil
}
