// Package migrations holds the embedded goose schema migrations of the
// device snapshot store (SQLite) and the relay store (PostgreSQL).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed device/*.sql relay/*.sql
var embedMigrations embed.FS

// ErrNilDB is returned when a migration is requested on a nil connection.
var ErrNilDB = errors.New("db is nil")

// MigrateDevice applies the device schema to an SQLite connection.
func MigrateDevice(db *sql.DB) error {
	return migrate(db, "sqlite3", "device")
}

// MigrateRelay applies the relay schema to a PostgreSQL connection opened
// with the pgx driver.
func MigrateRelay(db *sql.DB) error {
	return migrate(db, "pgx", "relay")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
