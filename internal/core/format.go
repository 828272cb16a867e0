package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTokenCount renders a raw token count as a compact string:
// 128000 -> "128k", 1000000 -> "1M", 1500000 -> "1.5M". A decimal place
// appears only when the remainder is non-zero. Zero or negative counts
// render as "N/A".
func FormatTokenCount(n int) string {
	if n <= 0 {
		return "N/A"
	}
	if n >= 1_000_000 {
		if n%1_000_000 != 0 {
			return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
		}
		return strconv.Itoa(n/1_000_000) + "M"
	}
	if n >= 1000 {
		if n%1000 != 0 {
			return fmt.Sprintf("%.1fk", float64(n)/1000)
		}
		return strconv.Itoa(n/1000) + "k"
	}
	return strconv.Itoa(n)
}

// ParseTokenCount is the inverse of FormatTokenCount. It accepts "k"/"M"
// suffixes (case-insensitive) and comma-grouped plain integers. The second
// return is false for "N/A", em-dash placeholders, empty input, or
// anything non-numeric.
func ParseTokenCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" || strings.Contains(s, "—") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	lower := strings.ToLower(s)

	mult := 1.0
	switch {
	case strings.HasSuffix(lower, "m"):
		mult = 1_000_000
		lower = strings.TrimSuffix(lower, "m")
	case strings.HasSuffix(lower, "k"):
		mult = 1000
		lower = strings.TrimSuffix(lower, "k")
	}

	f, err := strconv.ParseFloat(lower, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f * mult)), true
}
