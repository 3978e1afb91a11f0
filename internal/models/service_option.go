package models

import "time"

// ServiceOption is a variant of a catalog service (e.g. "long hair")
// that adds time and price on top of the base service.
type ServiceOption struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `gorm:"index;not null" json:"service_id"`

	Name             string `gorm:"size:100;not null" json:"name"`
	ExtraDurationMin int    `json:"extra_duration_min"`
	ExtraPriceCents  int    `json:"extra_price_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
