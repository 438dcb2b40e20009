package postgres

import (
	"context"
	"strconv"
	"time"

	"weighttracker/internal/domain"
)

// AddObservation appends one observation row. The weight is stored as its
// decimal rendering; the timestamp string is stored verbatim.
func (d *DB) AddObservation(ctx context.Context, personID int64, weight float64, timestamp string) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO observations(person_id, weight, datetime, created_at) VALUES($1, $2, $3, $4);",
		personID, strconv.FormatFloat(weight, 'f', -1, 64), timestamp, time.Now().UTC(),
	)
	return err
}

// ListObservations returns every stored observation row, unordered. The
// reconciliation pipeline sorts and filters; the repository does neither.
func (d *DB) ListObservations(ctx context.Context) ([]domain.Observation, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT person_id, weight, datetime FROM observations;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Observation
	for rows.Next() {
		var o domain.Observation
		if err := rows.Scan(&o.PersonID, &o.Weight, &o.Datetime); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
