package domain

const lbPerKg = 2.2046226218

// ConvertWeight converts a weight between "kg" and "lb". Unrecognised unit
// pairs return v unchanged rather than failing; the chart then falls back to
// the stored value.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == "kg" && to == "lb":
		return v * lbPerKg
	case from == "lb" && to == "kg":
		return v / lbPerKg
	default:
		return v
	}
}
