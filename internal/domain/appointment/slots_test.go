package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestWorkingWindow(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)
	assert.Equal(t, at(9, 0), w.Start)
	assert.Equal(t, at(18, 0), w.End)
}

func TestGenerateSlotsSixtyMinuteService(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)

	slots := GenerateSlots(w, 60*time.Minute, nil)

	require.Len(t, slots, 9)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(10, 0), slots[0].End)
	assert.Equal(t, at(17, 0), slots[8].Start)
	assert.Equal(t, at(18, 0), slots[8].End)
}

func TestGenerateSlotsStepEqualsDuration(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)

	// 9 hours / 45 minutes = 12 exact slots, grid 09:00, 09:45, 10:30, ...
	slots := GenerateSlots(w, 45*time.Minute, nil)

	require.Len(t, slots, 12)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(9, 45), slots[1].Start)
	assert.Equal(t, at(10, 30), slots[2].Start)
	assert.Equal(t, at(17, 15), slots[11].Start)
	assert.Equal(t, at(18, 0), slots[11].End)
}

func TestGenerateSlotsNoTrailingPartialSlot(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)

	// 9 hours / 120 minutes = 4 full slots; the 17:00-19:00 candidate
	// spills past closing and must not appear
	slots := GenerateSlots(w, 120*time.Minute, nil)

	require.Len(t, slots, 4)
	assert.Equal(t, at(15, 0), slots[3].Start)
	assert.Equal(t, at(17, 0), slots[3].End)
}

func TestGenerateSlotsExcludesBusyIntervals(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)
	busy := []Interval{iv(13, 0, 14, 0)}

	slots := GenerateSlots(w, 60*time.Minute, busy)

	require.Len(t, slots, 8)
	for _, s := range slots {
		assert.False(t, (Interval{Start: s.Start, End: s.End}).Overlaps(busy[0]),
			"slot %v overlaps busy interval", s.Start)
	}
	// the neighbours of the busy hour survive
	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Contains(t, starts, at(12, 0))
	assert.Contains(t, starts, at(14, 0))
	assert.NotContains(t, starts, at(13, 0))
}

func TestGenerateSlotsBusyIntervalRemovedRestoresSlot(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)

	withBusy := GenerateSlots(w, 60*time.Minute, []Interval{iv(13, 0, 14, 0)})
	without := GenerateSlots(w, 60*time.Minute, nil)

	assert.Len(t, withBusy, 8)
	assert.Len(t, without, 9)
}

func TestGenerateSlotsEmptyNotNil(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)

	// a service longer than the whole window yields no slots but still a
	// JSON array, not null
	slots := GenerateSlots(w, 10*time.Hour, nil)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsInvalidStep(t *testing.T) {
	w := WorkingWindow(day(), time.UTC)
	assert.Nil(t, GenerateSlots(w, 0, nil))
}
