package calc

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPrefixRe matches the longest leading decimal literal of a string.
var numberPrefixRe = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseNumber reads the leading decimal number of s, ignoring leading
// whitespace and any trailing garbage ("3." and "12abc" both parse).
// ok is false when there is no number or it is NaN.
func ParseNumber(s string) (float64, bool) {
	m := numberPrefixRe.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	// Out of range literals come back as ±Inf with ErrRange.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f as the display shows numbers: shortest
// round-trip digits, no trailing ".0", exponent form outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
