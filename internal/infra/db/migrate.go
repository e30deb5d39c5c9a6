package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS articles (
    id                BIGSERIAL PRIMARY KEY,
    title             TEXT NOT NULL,
    author            TEXT NOT NULL,
    writing_date      TIMESTAMPTZ NOT NULL,
    word_count        INTEGER NOT NULL,
    reference_count   INTEGER NOT NULL,
    original_language BOOLEAN NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS journals (
    id                BIGSERIAL PRIMARY KEY,
    name              TEXT NOT NULL,
    topic             TEXT NOT NULL,
    language          TEXT NOT NULL,
    foundation_date   TIMESTAMPTZ NOT NULL,
    issn              TEXT NOT NULL,
    recommended_price TEXT NOT NULL,
    periodic          BOOLEAN NOT NULL,
    article_id        BIGINT NOT NULL UNIQUE REFERENCES articles(id)
)`,
}

// AUTOINCREMENT keeps ids from being reused after a delete.
var sqliteSchema = []string{
	`PRAGMA foreign_keys = ON`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    title             TEXT NOT NULL,
    author            TEXT NOT NULL,
    writing_date      DATETIME NOT NULL,
    word_count        INTEGER NOT NULL,
    reference_count   INTEGER NOT NULL,
    original_language BOOLEAN NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS journals (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    name              TEXT NOT NULL,
    topic             TEXT NOT NULL,
    language          TEXT NOT NULL,
    foundation_date   DATETIME NOT NULL,
    issn              TEXT NOT NULL,
    recommended_price TEXT NOT NULL,
    periodic          BOOLEAN NOT NULL,
    article_id        INTEGER NOT NULL UNIQUE REFERENCES articles(id)
)`,
}

var dropSchema = []string{
	`DROP TABLE IF EXISTS journals`,
	`DROP TABLE IF EXISTS articles`,
}

// Execer is satisfied by *sql.DB, *sql.Tx and *sqlx.DB.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// MigrateUp creates the journals and articles tables for the given driver.
// It is idempotent.
func MigrateUp(ctx context.Context, db Execer, driver string) error {
	name, err := DriverName(driver)
	if err != nil {
		return err
	}

	stmts := postgresSchema
	if name == "sqlite3" {
		stmts = sqliteSchema
	}
	return execAll(ctx, db, stmts)
}

// MigrateDown drops both tables. All stored journals are lost.
func MigrateDown(ctx context.Context, db Execer) error {
	return execAll(ctx, db, dropSchema)
}

func execAll(ctx context.Context, db Execer, stmts []string) error {
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
