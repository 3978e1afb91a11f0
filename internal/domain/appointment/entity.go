package appointment

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// IntervalOf is the booked interval of an appointment, derived from the
// stored start and resolved duration.
func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartAt, End: ap.EndAt()}
}
