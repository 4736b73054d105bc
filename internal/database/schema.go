package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"
)

// staff_documents holds one JSON document per staff member. Role, email and the
// password hash are lifted into columns for lookups and uniqueness; the
// revision column backs compare-and-swap updates.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS staff_documents (
	id            TEXT PRIMARY KEY,
	role          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	data          JSONB NOT NULL,
	revision      BIGINT NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS staff_documents_email_key ON staff_documents (lower(email));
CREATE INDEX IF NOT EXISTS staff_documents_role_idx ON staff_documents (role);
`

const sqliteSchemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS staff_documents (
	id            TEXT PRIMARY KEY,
	role          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	data          TEXT NOT NULL,
	revision      INTEGER NOT NULL DEFAULT 1,
	created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
	updated_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE UNIQUE INDEX IF NOT EXISTS staff_documents_email_key ON staff_documents (email COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS staff_documents_role_idx ON staff_documents (role);
`

// EnsurePostgresSchema creates the tables if they do not exist yet.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		zlog.Error().Err(err).Msg("Error creating PostgreSQL schema")
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

// migrateSQLite runs pending migrations tracked by PRAGMA user_version.
func migrateSQLite(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteSchemaVersion {
		return nil
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion)); err != nil {
		return fmt.Errorf("write user_version: %w", err)
	}
	zlog.Info().Int("version", sqliteSchemaVersion).Msg("SQLite schema migrated")
	return nil
}
