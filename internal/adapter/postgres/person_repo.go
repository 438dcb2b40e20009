package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weighttracker/internal/domain"
)

// ListPeople returns the full person directory ordered by name.
func (d *DB) ListPeople(ctx context.Context) ([]domain.Person, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT id, name FROM people ORDER BY name;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPersonByName looks up a directory entry by display name. Returns nil
// without error when no such person exists.
func (d *DB) GetPersonByName(ctx context.Context, name string) (*domain.Person, error) {
	var p domain.Person
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name FROM people WHERE name = $1;", name,
	).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
