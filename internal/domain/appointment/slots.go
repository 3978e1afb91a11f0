package appointment

import "time"

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GenerateSlots steps through the working window in increments of the
// requested duration and keeps every candidate that fits entirely inside
// the window and touches no busy interval.
//
// The step equals the service duration, so services of different lengths
// produce different, non-aligned grids for the same day. That is intended:
// there is no shared 15/30-minute granularity.
func GenerateSlots(window Interval, step time.Duration, busy []Interval) []TimeSlot {
	if step <= 0 {
		return nil
	}

	slots := []TimeSlot{}

	for cur := window.Start; ; cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(window.End) {
			// no partial trailing slot
			break
		}

		candidate := Interval{Start: cur, End: end}
		if ConflictsWith(candidate, busy) {
			continue
		}

		slots = append(slots, TimeSlot{Start: cur, End: end})
	}

	return slots
}
