package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// NumberSortKey converts a formatted value ("128k", "1.5M", "42") into a
// sortable float. Unknown or unparseable values sort below every real
// number rather than failing the comparison.
func NumberSortKey(s string) float64 {
	n, ok := ParseTokenCount(s)
	if !ok {
		return math.Inf(-1)
	}
	return float64(n)
}

// DateSortKey converts a M/D/YYYY date string into a sortable time.
// Absent or unparseable dates sort as earliest-possible (the zero time),
// so sorting a mixed set never panics. Two-digit years are widened the
// way the legacy data used them: <50 means 20xx, otherwise 19xx.
func DateSortKey(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return time.Time{}
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}
	}
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FormatReleaseDate renders a release timestamp as M/D/YYYY, matching the
// feed normalizer's output (no zero padding).
func FormatReleaseDate(t time.Time) string {
	return strconv.Itoa(int(t.Month())) + "/" + strconv.Itoa(t.Day()) + "/" + strconv.Itoa(t.Year())
}
