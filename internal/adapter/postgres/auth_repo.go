package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

const userColumns = "id, username, password_hash, created_at"

// queryUser runs a single-user query and scans the result. Returns nil
// without error when no row matches.
func (d *DB) queryUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByName looks up a login account by username.
func (d *DB) GetUserByName(ctx context.Context, username string) (*domain.User, error) {
	return d.queryUser(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1;", username)
}

// GetUserByID looks up a login account by id.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.queryUser(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1;", id)
}

// CreateUser inserts a login account and returns the stored row.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	return d.queryUser(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING "+userColumns+";",
		username, passwordHash, time.Now().UTC())
}

// CountUsers reports how many login accounts exist.
func (d *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users;").Scan(&n)
	return n, err
}

// CreateSession records a session token for a user.
func (d *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4);",
		userID, token, expiresAt, time.Now().UTC())
	return err
}

// GetSessionByToken looks up a session by its token. Returns nil without
// error when no such session exists.
func (d *DB) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := d.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1;", token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session by token.
func (d *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1;", token)
	return err
}

// DeleteExpiredSessions removes every session past its expiry.
func (d *DB) DeleteExpiredSessions(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1;", time.Now().UTC())
	return err
}
