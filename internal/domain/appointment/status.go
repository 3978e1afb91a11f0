package appointment

import "github.com/salonsuite/salon-scheduler/internal/httperr"

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// The status graph is forward-only: booked -> completed, booked -> cancelled.
// Nothing transitions out of cancelled.

func CanCancel(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
