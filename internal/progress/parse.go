package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/placar/internal/domain"
)

// ParseEntry parses a weekly entry permissively. Blank, unparsable and
// non-finite text all report ok=false and are treated as "no data".
func ParseEntry(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	// Accept a decimal comma ("0,5") when there is no dot.
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ClampWeeks bounds a week count to [MinWeeks, MaxWeeks].
func ClampWeeks(n int) int {
	if n < domain.MinWeeks {
		return domain.MinWeeks
	}
	if n > domain.MaxWeeks {
		return domain.MaxWeeks
	}
	return n
}

// ParseWeeks parses a week count typed by the user. Invalid text falls
// back to MinWeeks; out-of-range values are clamped.
func ParseWeeks(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return domain.MinWeeks
	}
	return ClampWeeks(n)
}
