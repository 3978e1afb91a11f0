package models

import "time"

const (
	RoleClient = "client"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	// Bookable marks staff members who own a calendar and can be
	// targeted by availability queries.
	Bookable bool `gorm:"default:false" json:"bookable"`
	Active   bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsPractitioner() bool {
	return u.Role == RoleStaff && u.Bookable && u.Active
}
