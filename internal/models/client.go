package models

import "time"

// Client is the person an appointment is for. Walk-ins created by staff
// have no linked user; registered clients are linked through UserID.
type Client struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
