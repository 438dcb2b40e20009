package series

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Table is the intermediate (day x person) grid. Days and Names are sorted
// ascending; Cells holds a value per (day, name) where one exists.
type Table struct {
	Days  []string
	Names []string
	Cells map[string]map[string]float64 // day -> name -> weight
}

// Pivot groups measurements by (calendar day, person name) and aggregates
// multiple same-day measurements for one person by arithmetic mean. The
// resulting day set is the union over all people: only observed days appear.
func Pivot(ms []Measurement) Table {
	type acc struct {
		sum float64
		n   int
	}
	accs := make(map[string]map[string]*acc)
	nameSet := make(map[string]bool)

	for _, m := range ms {
		day := m.At.Format(dayLayout)
		if accs[day] == nil {
			accs[day] = make(map[string]*acc)
		}
		a := accs[day][m.Person]
		if a == nil {
			a = &acc{}
			accs[day][m.Person] = a
		}
		a.sum += m.Weight
		a.n++
		nameSet[m.Person] = true
	}

	t := Table{Cells: make(map[string]map[string]float64, len(accs))}
	for day, byName := range accs {
		t.Days = append(t.Days, day)
		cells := make(map[string]float64, len(byName))
		for name, a := range byName {
			cells[name] = a.sum / float64(a.n)
		}
		t.Cells[day] = cells
	}
	sort.Strings(t.Days)

	for name := range nameSet {
		t.Names = append(t.Names, name)
	}
	sort.Strings(t.Names)
	return t
}

// Resample reindexes the table onto a dense daily grid spanning the minimum
// to maximum observed day inclusive. Newly introduced days have no cells;
// interpolation fills them afterwards.
func Resample(t Table) Table {
	if len(t.Days) == 0 {
		return t
	}
	first, _ := time.Parse(dayLayout, t.Days[0])
	last, _ := time.Parse(dayLayout, t.Days[len(t.Days)-1])

	var dense []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dense = append(dense, d.Format(dayLayout))
	}
	t.Days = dense
	return t
}

// Series reshapes the dense table into the ordered output form. Every cell
// is expected to be populated by the time this runs.
func (t Table) Series() Series {
	s := make(Series, 0, len(t.Days))
	for _, day := range t.Days {
		weights := make(map[string]float64, len(t.Names))
		for _, name := range t.Names {
			if v, ok := t.Cells[day][name]; ok {
				weights[name] = v
			}
		}
		s = append(s, DayWeights{Day: day, Weights: weights})
	}
	return s
}
