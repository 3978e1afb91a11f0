package dto

import "time"

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	ServiceName      string    `json:"service_name"`
	PriceCents       int       `json:"price_cents"`
	PractitionerName string    `json:"practitioner_name,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}
