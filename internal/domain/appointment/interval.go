package appointment

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval for a booking starting at start and
// lasting d. A non-positive duration is a caller bug and is rejected
// before any overlap math runs.
func NewInterval(start time.Time, d time.Duration) (Interval, error) {
	if d <= 0 {
		return Interval{}, httperr.ErrBusiness("invalid_duration")
	}
	return Interval{Start: start, End: start.Add(d)}, nil
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect: each must
// start before the other ends. Back-to-back intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ConflictsWith reports whether proposed overlaps any busy interval.
func ConflictsWith(proposed Interval, busy []Interval) bool {
	for _, b := range busy {
		if proposed.Overlaps(b) {
			return true
		}
	}
	return false
}
