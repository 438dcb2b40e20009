package series

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"weighttracker/internal/domain"
)

// displayZone is the fixed reference timezone for date bucketing (UTC+8).
// A fixed offset rather than a named location keeps day boundaries stable
// regardless of the host's tzdata.
var displayZone = time.FixedZone("UTC+8", 8*60*60)

// Row is an observation joined with its person's display name. Weight and
// Datetime are still the raw stored strings.
type Row struct {
	Person   string
	Weight   string
	Datetime string
	raw      domain.Observation
}

// Measurement is a cleaned observation: joined, parsed, and normalized to
// the display timezone's wall clock.
type Measurement struct {
	Person string
	At     time.Time
	Weight float64
}

// Join left-joins observations to the person directory on person id.
// Observations referencing an unknown person are silently dropped; they stay
// in storage but contribute nothing to the chart.
func Join(obs []domain.Observation, people []domain.Person) []Row {
	names := make(map[int64]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	rows := make([]Row, 0, len(obs))
	for _, o := range obs {
		name, ok := names[o.PersonID]
		if !ok {
			continue
		}
		rows = append(rows, Row{Person: name, Weight: o.Weight, Datetime: o.Datetime, raw: o})
	}
	return rows
}

// Clean parses each row's weight and timestamp, dropping any row where
// either fails. Dropping is deliberate leniency toward dirty historical
// data; the returned Drop list exists only for internal logging.
func Clean(rows []Row) ([]Measurement, []Drop) {
	ms := make([]Measurement, 0, len(rows))
	var drops []Drop
	for _, r := range rows {
		w, err := strconv.ParseFloat(strings.TrimSpace(r.Weight), 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			// ParseFloat accepts "NaN" and "Inf"; a non-finite weight would
			// poison the same-day mean and every interpolated neighbor, so
			// it is as malformed as unparseable text.
			drops = append(drops, Drop{Row: r.raw, Reason: fmt.Sprintf("bad weight %q", r.Weight)})
			continue
		}
		at, err := NormalizeTimestamp(r.Datetime)
		if err != nil {
			drops = append(drops, Drop{Row: r.raw, Reason: fmt.Sprintf("bad timestamp %q", r.Datetime)})
			continue
		}
		ms = append(ms, Measurement{Person: r.Person, At: at, Weight: w})
	}
	return ms, drops
}

// timestampLayouts are the accepted stored formats, tried in order. Layouts
// without an offset are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp parses a stored timestamp and returns the wall-clock
// instant in the display timezone, with the offset dropped. All downstream
// date bucketing works on this naive wall clock.
func NormalizeTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	for _, layout := range timestampLayouts {
		t, err = time.Parse(layout, s)
		if err == nil {
			local := t.In(displayZone)
			return time.Date(local.Year(), local.Month(), local.Day(),
				local.Hour(), local.Minute(), local.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// SortByTime orders measurements ascending by normalized timestamp. The mean
// aggregation makes the result order-insensitive, but a deterministic order
// keeps downstream processing reproducible.
func SortByTime(ms []Measurement) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].At.Before(ms[j].At)
	})
}
