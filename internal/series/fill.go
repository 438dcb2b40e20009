package series

import "time"

// Interpolate fills interior gaps in each person's column with linear
// interpolation weighted by elapsed calendar time between the two nearest
// known days. On a daily grid the weighting matches index interpolation, but
// computing against actual day timestamps keeps the fill correct if the grid
// ever carries uneven spacing.
func Interpolate(t Table) Table {
	times := make([]time.Time, len(t.Days))
	for i, day := range t.Days {
		times[i], _ = time.Parse(dayLayout, day)
	}

	for _, name := range t.Names {
		prev := -1 // index of the last day with a known value
		for i, day := range t.Days {
			if _, ok := t.Cells[day][name]; !ok {
				continue
			}
			if prev >= 0 && i-prev > 1 {
				lo := t.Cells[t.Days[prev]][name]
				hi := t.Cells[day][name]
				span := times[i].Sub(times[prev]).Seconds()
				for k := prev + 1; k < i; k++ {
					frac := times[k].Sub(times[prev]).Seconds() / span
					setCell(t, t.Days[k], name, lo+frac*(hi-lo))
				}
			}
			prev = i
		}
	}
	return t
}

// FillBounds extends each person's column to the grid edges: leading gaps
// take the first known value (backward fill), trailing gaps the last known
// value (forward fill). After this pass no cell is empty for any person who
// had at least one valid observation.
func FillBounds(t Table) Table {
	for _, name := range t.Names {
		first, last := -1, -1
		for i, day := range t.Days {
			if _, ok := t.Cells[day][name]; ok {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			continue
		}
		for i := 0; i < first; i++ {
			setCell(t, t.Days[i], name, t.Cells[t.Days[first]][name])
		}
		for i := last + 1; i < len(t.Days); i++ {
			setCell(t, t.Days[i], name, t.Cells[t.Days[last]][name])
		}
	}
	return t
}

func setCell(t Table, day, name string, v float64) {
	if t.Cells[day] == nil {
		t.Cells[day] = make(map[string]float64)
	}
	t.Cells[day][name] = v
}
