package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// MonthName returns the full English month name of t ("January" .. "December").
func MonthName(t time.Time) string {
	return t.Month().String()
}

// ValidMonthName reports whether s is one of the 12 full month names.
func ValidMonthName(s string) bool {
	for m := time.January; m <= time.December; m++ {
		if m.String() == s {
			return true
		}
	}
	return false
}

// MonthKey identifies a calendar (year, month) bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

// KeyOf returns the bucket a timestamp falls into.
func KeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Label renders the bucket as e.g. "Jan 2025", the format the dashboard
// charts display on their x-axis.
func (k MonthKey) Label() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// TrailingMonths returns the n month buckets ending at now, oldest first.
func TrailingMonths(now time.Time, n int) []MonthKey {
	keys := make([]MonthKey, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		t := first.AddDate(0, -i, 0)
		keys = append(keys, MonthKey{Year: t.Year(), Month: t.Month()})
	}
	return keys
}
