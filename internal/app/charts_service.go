package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"weighttracker/internal/cache"
	"weighttracker/internal/domain"
	"weighttracker/internal/series"
)

// Fixed value-axis bounds in kilograms. Keeping the scale constant across
// refreshes stops the chart from rescaling every time a point is added.
const (
	AxisMinKg = 45.0
	AxisMaxKg = 110.0
)

// Axis is the display range for the chart's value axis.
type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ChartData is the display-ready reconciled series plus axis metadata.
type ChartData struct {
	Unit   string         `json:"unit"`
	Axis   Axis           `json:"axis"`
	Points []series.Point `json:"points"`
}

// ChartsService produces the reconciled weight series for charting. Reads go
// through short-lived caches that the ingest side invalidates on write.
type ChartsService struct {
	obsRepo    domain.ObservationRepository
	peopleRepo domain.PersonRepository

	obsCache    *cache.TTL[[]domain.Observation]
	peopleCache *cache.TTL[[]domain.Person]
	log         *slog.Logger
}

// NewChartsService creates a ChartsService with the given read-cache TTL.
func NewChartsService(obs domain.ObservationRepository, people domain.PersonRepository, readTTL time.Duration, log *slog.Logger) *ChartsService {
	return &ChartsService{
		obsRepo:     obs,
		peopleRepo:  people,
		obsCache:    cache.NewTTL[[]domain.Observation](readTTL),
		peopleCache: cache.NewTTL[[]domain.Person](readTTL),
		log:         log,
	}
}

// InvalidateObservations discards the cached observation set. Implements
// the ingest side's Invalidator.
func (s *ChartsService) InvalidateObservations() {
	s.obsCache.Invalidate()
}

// GetWeightSeries fetches observations and the person directory, reconciles
// them into the dense daily series, and returns long-form points in the
// requested unit. Storage failures propagate unchanged; malformed rows are
// logged and skipped.
func (s *ChartsService) GetWeightSeries(ctx context.Context, unit string) (*ChartData, error) {
	if unit == "" {
		unit = "kg"
	}
	if unit != "kg" && unit != "lb" {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}

	obs, err := s.observations(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.People(ctx)
	if err != nil {
		return nil, err
	}

	ser, drops := series.Reconcile(obs, people)
	for _, d := range drops {
		s.log.Debug("skipped malformed observation",
			"personId", d.Row.PersonID, "reason", d.Reason)
	}

	pts := ser.Points()
	if unit != "kg" {
		for i := range pts {
			pts[i].Weight = domain.ConvertWeight(pts[i].Weight, "kg", unit)
		}
	}

	return &ChartData{
		Unit: unit,
		Axis: Axis{
			Min: domain.ConvertWeight(AxisMinKg, "kg", unit),
			Max: domain.ConvertWeight(AxisMaxKg, "kg", unit),
		},
		Points: pts,
	}, nil
}

// People returns the person directory, cached.
func (s *ChartsService) People(ctx context.Context) ([]domain.Person, error) {
	if people, ok := s.peopleCache.Get(); ok {
		return people, nil
	}
	people, err := s.peopleRepo.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	s.peopleCache.Put(people)
	return people, nil
}

func (s *ChartsService) observations(ctx context.Context) ([]domain.Observation, error) {
	if obs, ok := s.obsCache.Get(); ok {
		return obs, nil
	}
	obs, err := s.obsRepo.ListObservations(ctx)
	if err != nil {
		return nil, err
	}
	s.obsCache.Put(obs)
	return obs, nil
}
