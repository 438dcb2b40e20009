// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	// weight and datetime are TEXT on purpose: historical rows written by
	// older clients can be malformed, and the reconciliation pipeline owns
	// the decision to skip them. There is also no FK from observations to
	// people; unknown person ids are accepted at write time and dropped at
	// join time.
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS people (id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL);",
		"CREATE TABLE IF NOT EXISTS observations (id BIGSERIAL PRIMARY KEY, person_id BIGINT NOT NULL, weight TEXT NOT NULL, datetime TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_observations_person_id ON observations(person_id);",
		"CREATE INDEX IF NOT EXISTS idx_observations_created_at ON observations(created_at);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SeedPeople inserts the configured person names, skipping ones that already
// exist. The directory is otherwise maintained out-of-band.
func (d *DB) SeedPeople(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := d.sql.ExecContext(ctx,
			"INSERT INTO people(name) VALUES($1) ON CONFLICT (name) DO NOTHING;", name); err != nil {
			return fmt.Errorf("seed people: %w", err)
		}
	}
	return nil
}
