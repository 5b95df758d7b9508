package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// DriverName is the database/sql driver used for all connections.
const DriverName = "sqlite"

// ErrNotFound is returned when a requested row doesn't exist.
var ErrNotFound = errors.New("not found")

// ErrStatusMismatch is returned by conditional status updates when the row
// is no longer in the expected status.
var ErrStatusMismatch = errors.New("status mismatch/conditional failed")

// Open opens the SQLite database at path, applies pragmas and migrations,
// and returns the connection pool. Use ":memory:" for an ephemeral store.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite benefits from a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Minute * 3)

	// Cascade delete of order items depends on foreign key enforcement.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return db, nil
}
