package appointment

import "time"

type AvailabilityInput struct {
	ServiceID       uint
	ServiceOptionID *uint

	// PractitionerID narrows the answer to one calendar; zero means all
	// bookable practitioners.
	PractitionerID uint

	Day time.Time
}

type PractitionerAvailability struct {
	PractitionerID   uint       `json:"practitioner_id"`
	PractitionerName string     `json:"practitioner_name"`
	Slots            []TimeSlot `json:"slots"`
}
