// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"weighttracker/internal/domain"
)

// DB implements the domain repositories in memory.
type DB struct {
	mu           sync.Mutex
	people       []domain.Person
	observations []domain.Observation
	users        []*domain.User
	sessions     map[string]*domain.Session

	personIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.ObservationRepository = (*DB)(nil)
var _ domain.PersonRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)

// --- PersonRepository ---

// SeedPeople registers person names, skipping ones already present.
func (db *DB) SeedPeople(ctx context.Context, names []string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, name := range names {
		exists := false
		for _, p := range db.people {
			if p.Name == name {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		db.personIDCounter++
		db.people = append(db.people, domain.Person{ID: db.personIDCounter, Name: name})
	}
	return nil
}

// ListPeople returns the person directory.
func (db *DB) ListPeople(ctx context.Context) ([]domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Person, len(db.people))
	copy(out, db.people)
	return out, nil
}

// GetPersonByName looks up a person by display name.
func (db *DB) GetPersonByName(ctx context.Context, name string) (*domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.people {
		if p.Name == name {
			ret := p
			return &ret, nil
		}
	}
	return nil, nil
}

// --- ObservationRepository ---

// AddObservation appends an observation row.
func (db *DB) AddObservation(ctx context.Context, personID int64, weight float64, timestamp string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.observations = append(db.observations, domain.Observation{
		PersonID: personID,
		Weight:   strconv.FormatFloat(weight, 'f', -1, 64),
		Datetime: timestamp,
	})
	return nil
}

// AddRawObservation appends a row with arbitrary weight/datetime strings.
// Only useful in tests that need malformed historical rows.
func (db *DB) AddRawObservation(o domain.Observation) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.observations = append(db.observations, o)
}

// ListObservations returns all stored observation rows.
func (db *DB) ListObservations(ctx context.Context) ([]domain.Observation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Observation, len(db.observations))
	copy(out, db.observations)
	return out, nil
}

// --- UserRepository ---

// GetUserByName looks up a login account by username.
func (db *DB) GetUserByName(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetUserByID looks up a login account by id.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// CreateUser registers a login account, rejecting duplicate usernames.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// CountUsers reports how many login accounts exist.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// CreateSession records a session token for a user.
func (db *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetSessionByToken looks up a session by its token.
func (db *DB) GetSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions removes every session past its expiry.
func (db *DB) DeleteExpiredSessions(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()
	for k, v := range db.sessions {
		if now.After(v.ExpiresAt) {
			delete(db.sessions, k)
		}
	}
	return nil
}
