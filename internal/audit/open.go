package audit

import "fmt"

// Open dispatches to OpenSQLite or OpenPostgres based on driver.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("audit: unknown driver %q", driver)
	}
}
