package panels

import (
	"strconv"
	"strings"
)

// parseFloat parses a user-typed number, tolerating surrounding space and a
// comma decimal separator.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatFloat renders a number the way layouts write them: no trailing
// zeros, no exponent for the magnitudes keys use.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
