package models

import "tablebook/src/types"

type Customer struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"index" json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Bookings []Booking `gorm:"foreignKey:customer_id" json:"bookings,omitempty"`

	types.Timestamps
}
