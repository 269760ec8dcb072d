package utils

import (
	"math"
	"strconv"
)

// DefaultEpsilon is the tolerance used when comparing derived quantities
const DefaultEpsilon = 1e-9

// ApproxEqual reports whether a and b differ by at most eps, absolutely or relative to the larger magnitude.
func ApproxEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	return diff <= eps*math.Max(math.Abs(a), math.Abs(b))
}

// FormatQuantity renders v with six significant digits and no trailing zeros,
// e.g. 28.9, 3216, 1e+06. Negative zero prints as 0.
func FormatQuantity(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
