// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"weighttracker/internal/domain"
)

var (
	// ErrInsertFailed is the single outcome for any storage failure during
	// ingestion. The underlying cause is logged, never surfaced.
	ErrInsertFailed = errors.New("could not save the observation, please try again later")
	// ErrBadDate indicates a malformed optional date on the submission.
	ErrBadDate = errors.New(`date must be formatted as "2006-01-02"`)
	// ErrUnknownPerson indicates a submitted name outside the person directory.
	ErrUnknownPerson = errors.New("unknown person")
)

// Invalidator lets the ingest side discard read caches after a write.
type Invalidator interface {
	InvalidateObservations()
}

// storedTimestampLayout is the timezone-naive ISO-8601 form observations are
// stored in, second precision, no offset.
const storedTimestampLayout = "2006-01-02T15:04:05"

// IngestService records new weight observations.
type IngestService struct {
	obs    domain.ObservationRepository
	people domain.PersonRepository
	caches Invalidator
	log    *slog.Logger
	now    func() time.Time
}

// NewIngestService creates an IngestService backed by the given repositories.
func NewIngestService(obs domain.ObservationRepository, people domain.PersonRepository, caches Invalidator, log *slog.Logger) *IngestService {
	return &IngestService{obs: obs, people: people, caches: caches, log: log, now: time.Now}
}

// RecordObservation appends one observation for the given person id.
//
// An empty day means "now". A non-empty day is combined with the current
// time-of-day so back-dated entries still carry a plausible clock time.
// Neither the person id nor the weight range is validated here: bogus ids
// are filtered at read time by the reconciliation join, and the 40-120 kg
// range is a form hint, not an invariant.
func (s *IngestService) RecordObservation(ctx context.Context, personID int64, weight float64, day string) error {
	now := s.now()
	at := now
	if day != "" {
		d, err := time.ParseInLocation("2006-01-02", day, now.Location())
		if err != nil {
			return ErrBadDate
		}
		at = time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}

	if err := s.obs.AddObservation(ctx, personID, weight, at.Format(storedTimestampLayout)); err != nil {
		s.log.Error("insert observation failed", "personId", personID, "err", err)
		return ErrInsertFailed
	}

	// Synchronous invalidation bounds cache staleness to the moment of the
	// write: the next chart read observes this row.
	s.caches.InvalidateObservations()
	return nil
}

// RecordForName resolves a submitted person name against the directory and
// records the observation under that person's id.
func (s *IngestService) RecordForName(ctx context.Context, name string, weight float64, day string) error {
	p, err := s.people.GetPersonByName(ctx, name)
	if err != nil {
		s.log.Error("person lookup failed", "name", name, "err", err)
		return ErrInsertFailed
	}
	if p == nil {
		return ErrUnknownPerson
	}
	return s.RecordObservation(ctx, p.ID, weight, day)
}
