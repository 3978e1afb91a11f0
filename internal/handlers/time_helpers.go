package handlers

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

// parseDateIn reads a YYYY-MM-DD calendar day in the institute timezone.
func parseDateIn(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

// parseStartAt reads an absolute ISO-8601 instant.
func parseStartAt(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
