package domain

import (
	"context"
	"time"
)

// User represents an authenticated user in the system. Users gate access to
// the dashboard; they are unrelated to the people whose weights are tracked.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an active user session.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetUserByName(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
// Both auth ports are usually served by the same storage adapter; method
// names carry the entity so one type can implement them all.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSessionByToken(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}
