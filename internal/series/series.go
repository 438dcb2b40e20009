// Package series builds the dense daily weight series used by the chart.
//
// Raw observations arrive irregularly timed, possibly malformed, and keyed by
// person id. The pipeline joins them against the person directory, normalizes
// timestamps to a fixed display timezone, averages same-day duplicates, and
// fills every gap on a dense daily grid so each tracked person has a value for
// every day between the first and last observation.
//
// Each stage is an explicit function over plain slices and maps so it can be
// tested on its own; Reconcile just runs them in order.
package series

import (
	"sort"

	"weighttracker/internal/domain"
)

// DayWeights is one row of the reconciled series: a calendar day and the
// estimated weight for every tracked person on that day.
type DayWeights struct {
	Day     string             `json:"day"`
	Weights map[string]float64 `json:"weights"`
}

// Series is the reconciled, gap-free daily series ordered by day.
type Series []DayWeights

// Point is one long-form chart point.
type Point struct {
	Day    string  `json:"day"`
	Person string  `json:"person"`
	Weight float64 `json:"weight"`
}

// Drop records an observation excluded during cleaning, for diagnostics.
// Dropped rows never surface to the caller as errors.
type Drop struct {
	Row    domain.Observation
	Reason string
}

// Reconcile turns raw observations and the person directory into a Series.
// It is a pure function: identical inputs yield identical output, and
// malformed rows are filtered rather than raised. People with no valid
// observation anywhere in the input are absent from the output entirely.
// An empty (or fully filtered) input yields a nil Series.
func Reconcile(obs []domain.Observation, people []domain.Person) (Series, []Drop) {
	rows := Join(obs, people)
	ms, drops := Clean(rows)
	SortByTime(ms)
	if len(ms) == 0 {
		return nil, drops
	}

	t := Pivot(ms)
	t = Resample(t)
	t = Interpolate(t)
	t = FillBounds(t)
	return t.Series(), drops
}

// Points flattens the series into (day, person, weight) triples sorted by
// day then person name.
func (s Series) Points() []Point {
	var pts []Point
	for _, dw := range s {
		names := make([]string, 0, len(dw.Weights))
		for name := range dw.Weights {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pts = append(pts, Point{Day: dw.Day, Person: name, Weight: dw.Weights[name]})
		}
	}
	return pts
}
