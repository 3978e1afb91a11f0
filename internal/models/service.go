package models

import "time"

type Service struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int    `json:"price_cents"`
	Active      bool   `gorm:"default:true" json:"active"`

	Options []ServiceOption `json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
