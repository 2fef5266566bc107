// Package storage opens the client's local sqlite database and applies the
// embedded schema migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/migrations"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the database at dsn and migrates it to
// the current schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating local database: %w", err)
	}
	return db, nil
}
