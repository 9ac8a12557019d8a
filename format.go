package sciexpr

import (
	"math"
	"strconv"
	"strings"
)

// displayDigits is the number of decimal places Format keeps.
const displayDigits = 10

// Format renders a result for display. Values within rounding error of an
// integer are written without a fractional part. Other values are rounded to
// ten decimal places with trailing zeros dropped, so anything smaller in
// magnitude than 1e-10 becomes "0".
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if r := math.Round(v); math.Abs(v-r) <= 0x1p-52*math.Max(1, math.Abs(v)) {
		return formatInt(r)
	}
	s := strconv.FormatFloat(v, 'f', displayDigits, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// formatInt renders an integral value.
func formatInt(r float64) string {
	if r == 0 {
		// Includes negative zero.
		return "0"
	}
	if math.Abs(r) >= 1e21 {
		return strconv.FormatFloat(r, 'g', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
