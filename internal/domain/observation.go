package domain

import "context"

// Observation is a single weight measurement row exactly as the storage
// collaborator returns it. Weight and Datetime stay raw strings here: rows
// written by older clients can be malformed, and deciding what to do with
// them belongs to the reconciliation pipeline, not the repository.
type Observation struct {
	PersonID int64  `json:"personId"`
	Weight   string `json:"weight"`
	Datetime string `json:"datetime"`
}

// ObservationRepository is the port for weight observation persistence.
// Observations are append-only; nothing ever updates or deletes a row.
type ObservationRepository interface {
	AddObservation(ctx context.Context, personID int64, weight float64, timestamp string) error
	ListObservations(ctx context.Context) ([]Observation, error)
}
