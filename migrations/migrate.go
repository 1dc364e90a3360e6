// Package migrations carries the embedded schema migrations for the
// kv_records table backing the Postgres key-value store.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// Migrate brings the kv_records schema up to date. Safe to run on every
// startup; goose skips versions that are already applied.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(schema)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("applying kv_records migrations: %w", err)
	}

	return nil
}
