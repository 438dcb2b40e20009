package series_test

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"weighttracker/internal/domain"
	"weighttracker/internal/series"
)

var people = []domain.Person{
	{ID: 1, Name: "Samuel"},
	{ID: 2, Name: "Fabian"},
	{ID: 3, Name: "Genee"},
}

func obs(personID int64, weight, datetime string) domain.Observation {
	return domain.Observation{PersonID: personID, Weight: weight, Datetime: datetime}
}

func weightAt(t *testing.T, s series.Series, day, name string) float64 {
	t.Helper()
	for _, dw := range s {
		if dw.Day == day {
			v, ok := dw.Weights[name]
			if !ok {
				t.Fatalf("no value for %s on %s", name, day)
			}
			return v
		}
	}
	t.Fatalf("day %s not in series", day)
	return 0
}

func TestReconcile_EmptyInput(t *testing.T) {
	s, drops := series.Reconcile(nil, people)
	if s != nil {
		t.Fatalf("expected nil series, got %v", s)
	}
	if len(drops) != 0 {
		t.Fatalf("expected no drops, got %v", drops)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.5", "2026-03-01T08:00:00"),
		obs(1, "79.0", "2026-03-04T08:00:00"),
		obs(2, "65.2", "2026-03-02T21:30:00"),
	}
	a, _ := series.Reconcile(in, people)
	b, _ := series.Reconcile(in, people)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs differ:\n%v\n%v", a, b)
	}
}

func TestReconcile_DropsUnknownPerson(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(99, "70.0", "2026-03-01T09:00:00"),
	}
	s, drops := series.Reconcile(in, people)
	if len(drops) != 0 {
		t.Fatalf("unmatched person must not be a drop diagnostic, got %v", drops)
	}
	if len(s) != 1 {
		t.Fatalf("expected 1 day, got %d", len(s))
	}
	if len(s[0].Weights) != 1 {
		t.Fatalf("expected only Samuel in output, got %v", s[0].Weights)
	}
}

func TestReconcile_DenseGrid(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(1, "78.0", "2026-03-07T08:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	want := []string{
		"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
	}
	if len(s) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(s))
	}
	for i, dw := range s {
		if dw.Day != want[i] {
			t.Errorf("day[%d] = %s, want %s", i, dw.Day, want[i])
		}
	}
}

func TestReconcile_SameDayMean(t *testing.T) {
	in := []domain.Observation{
		obs(1, "70.0", "2026-03-01T07:00:00"),
		obs(1, "72.0", "2026-03-01T10:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	if got := weightAt(t, s, "2026-03-01", "Samuel"); got != 71.0 {
		t.Fatalf("mean = %v, want 71.0", got)
	}
}

func TestReconcile_TimeWeightedInterpolation(t *testing.T) {
	in := []domain.Observation{
		obs(1, "70.0", "2026-03-01T08:00:00"),
		obs(1, "80.0", "2026-03-05T08:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	checks := map[string]float64{
		"2026-03-02": 72.5,
		"2026-03-03": 75.0,
		"2026-03-04": 77.5,
	}
	for day, want := range checks {
		if got := weightAt(t, s, day, "Samuel"); math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", day, got, want)
		}
	}
}

func TestReconcile_BoundaryFill(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(1, "80.0", "2026-03-10T08:00:00"),
		obs(2, "60.0", "2026-03-10T09:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	// Fabian has a single observation on day 10; every earlier day must be
	// backward-filled with exactly that value.
	for _, dw := range s {
		if got := dw.Weights["Fabian"]; got != 60.0 {
			t.Errorf("%s: Fabian = %v, want 60.0", dw.Day, got)
		}
	}
}

func TestReconcile_ForwardFillAtEnd(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(1, "80.0", "2026-03-10T08:00:00"),
		obs(2, "62.0", "2026-03-01T09:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	if got := weightAt(t, s, "2026-03-10", "Fabian"); got != 62.0 {
		t.Fatalf("forward fill = %v, want 62.0", got)
	}
}

func TestReconcile_FiltersMalformed(t *testing.T) {
	in := []domain.Observation{
		obs(1, "not-a-number", "2026-03-01T08:00:00"),
		obs(1, "81.0", "2026-03-01T09:00:00"),
		obs(2, "64.0", "not-a-timestamp"),
	}
	s, drops := series.Reconcile(in, people)
	if len(drops) != 2 {
		t.Fatalf("expected 2 drops, got %v", drops)
	}
	if len(s) != 1 {
		t.Fatalf("expected 1 day, got %d", len(s))
	}
	if got := weightAt(t, s, "2026-03-01", "Samuel"); got != 81.0 {
		t.Fatalf("valid same-day row must be unaffected, got %v", got)
	}
	if _, ok := s[0].Weights["Fabian"]; ok {
		t.Fatal("Fabian has no valid observation and must be absent")
	}
}

func TestReconcile_FiltersNonFiniteWeights(t *testing.T) {
	// strconv.ParseFloat accepts these strings; they must still be dropped,
	// or one row poisons the same-day mean and, via interpolation and
	// boundary fill, every surrounding day.
	in := []domain.Observation{
		obs(1, "NaN", "2026-03-01T08:00:00"),
		obs(1, "+Inf", "2026-03-01T09:00:00"),
		obs(1, "-Inf", "2026-03-02T08:00:00"),
		obs(1, "80.0", "2026-03-01T10:00:00"),
		obs(1, "82.0", "2026-03-03T08:00:00"),
	}
	s, drops := series.Reconcile(in, people)
	if len(drops) != 3 {
		t.Fatalf("expected 3 drops, got %v", drops)
	}
	checks := map[string]float64{
		"2026-03-01": 80.0,
		"2026-03-02": 81.0,
		"2026-03-03": 82.0,
	}
	for day, want := range checks {
		got := weightAt(t, s, day, "Samuel")
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("%s: non-finite value %v leaked into the series", day, got)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", day, got, want)
		}
	}
	if _, err := json.Marshal(s); err != nil {
		t.Fatalf("series must stay JSON-encodable: %v", err)
	}
}

func TestReconcile_SingleDay(t *testing.T) {
	in := []domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(2, "60.0", "2026-03-01T12:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	if len(s) != 1 {
		t.Fatalf("expected single-day grid, got %d days", len(s))
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantDay string
		wantErr bool
	}{
		// Naive timestamps are read as UTC; 20:00 UTC is already the next
		// day at UTC+8.
		{"naive rolls into next day", "2026-03-01T20:00:00", "2026-03-02", false},
		{"naive same day", "2026-03-01T08:00:00", "2026-03-01", false},
		{"explicit utc offset", "2026-03-01T20:00:00Z", "2026-03-02", false},
		{"explicit non-utc offset", "2026-03-01T23:30:00+08:00", "2026-03-01", false},
		{"space separator", "2026-03-01 08:00:00", "2026-03-01", false},
		{"date only", "2026-03-01", "2026-03-01", false},
		{"garbage", "yesterday-ish", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := series.NormalizeTimestamp(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if day := got.Format("2006-01-02"); day != tc.wantDay {
				t.Errorf("day = %s, want %s", day, tc.wantDay)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	rows := series.Join([]domain.Observation{
		obs(2, "64.0", "2026-03-01T08:00:00"),
		obs(42, "70.0", "2026-03-01T08:00:00"),
	}, people)
	if len(rows) != 1 {
		t.Fatalf("expected 1 joined row, got %d", len(rows))
	}
	if rows[0].Person != "Fabian" {
		t.Errorf("person = %s, want Fabian", rows[0].Person)
	}
}

func TestPivot_UnionOfDays(t *testing.T) {
	ms, drops := series.Clean(series.Join([]domain.Observation{
		obs(1, "80.0", "2026-03-01T08:00:00"),
		obs(2, "60.0", "2026-03-03T08:00:00"),
	}, people))
	if len(drops) != 0 {
		t.Fatalf("unexpected drops: %v", drops)
	}
	series.SortByTime(ms)
	tab := series.Pivot(ms)
	if !reflect.DeepEqual(tab.Days, []string{"2026-03-01", "2026-03-03"}) {
		t.Errorf("days = %v", tab.Days)
	}
	if !reflect.DeepEqual(tab.Names, []string{"Fabian", "Samuel"}) {
		t.Errorf("names = %v", tab.Names)
	}
}

func TestPoints_Ordering(t *testing.T) {
	in := []domain.Observation{
		obs(2, "60.0", "2026-03-01T08:00:00"),
		obs(1, "80.0", "2026-03-01T09:00:00"),
		obs(1, "80.0", "2026-03-02T09:00:00"),
		obs(2, "60.0", "2026-03-02T10:00:00"),
	}
	s, _ := series.Reconcile(in, people)
	pts := s.Points()
	want := []series.Point{
		{Day: "2026-03-01", Person: "Fabian", Weight: 60.0},
		{Day: "2026-03-01", Person: "Samuel", Weight: 80.0},
		{Day: "2026-03-02", Person: "Fabian", Weight: 60.0},
		{Day: "2026-03-02", Person: "Samuel", Weight: 80.0},
	}
	if !reflect.DeepEqual(pts, want) {
		t.Fatalf("points = %v, want %v", pts, want)
	}
}
