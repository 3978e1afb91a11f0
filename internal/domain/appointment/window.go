package appointment

import "time"

// The salon takes bookings inside a fixed daily window. The window is not
// per-practitioner; every calendar lives between these hours.
const (
	OpeningHour = 9
	ClosingHour = 18
)

// WorkingWindow returns the bookable window for the calendar day of `day`
// in the given location.
func WorkingWindow(day time.Time, loc *time.Location) Interval {
	open := time.Date(day.Year(), day.Month(), day.Day(), OpeningHour, 0, 0, 0, loc)
	close := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, loc)
	return Interval{Start: open, End: close}
}
