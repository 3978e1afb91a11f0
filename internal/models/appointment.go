package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PractitionerID uint `gorm:"index:idx_appointments_practitioner_start" json:"practitioner_id"`
	Practitioner   User `gorm:"foreignKey:PractitionerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"practitioner"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Catalog booking: ServiceID (and optionally ServiceOptionID) set.
	// Ad-hoc staff booking: the Custom* fields set instead.
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	ServiceOptionID *uint          `json:"service_option_id"`
	ServiceOption   *ServiceOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_option,omitempty"`

	CustomServiceName string `gorm:"size:100" json:"custom_service_name"`
	CustomPriceCents  *int   `json:"custom_price_cents"`
	CustomDurationMin *int   `json:"custom_duration_min"`

	StartAt time.Time `gorm:"index:idx_appointments_practitioner_start" json:"start_at"`

	// DurationMin is resolved once at booking time (custom ?? service+option
	// ?? default). The end instant is never stored; see EndAt.
	DurationMin int `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndAt() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMin) * time.Minute)
}
