package db

import (
	"github.com/jmoiron/sqlx"
)

// OpenTestDB returns a migrated in-memory SQLite database.
func OpenTestDB() (*sqlx.DB, error) {
	conn, err := Open(":memory:")
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(conn, ""); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
