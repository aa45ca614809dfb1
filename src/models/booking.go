package models

import "tablebook/src/types"

// Booking occupies its assigned table for [Time, Time+location.TurnoverTime).
// Cancelled and rejected bookings never block availability; completed is a
// terminal status that means the table has been freed.
type Booking struct {
	ID               uint                `gorm:"primarykey" json:"id"`
	LocationID       uint                `gorm:"index:idx_bookings_location_date" json:"location_id,omitempty"`
	TableID          *uint               `gorm:"index" json:"table_id,omitempty"`
	Date             string              `gorm:"index:idx_bookings_location_date" json:"date"` // YYYY-MM-DD
	Time             string              `json:"time"`                                         // HH:mm local wall clock
	Guests           uint                `json:"guests,omitempty"`
	Status           types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	CustomerID       uint                `json:"customer_id,omitempty"`
	ConfirmationCode string              `gorm:"index" json:"confirmation_code,omitempty"`
	Notes            string              `json:"notes,omitempty"`

	Location *Location `gorm:"foreignKey:location_id" json:"location,omitempty"`
	Table    *Table    `gorm:"foreignKey:table_id" json:"table,omitempty"`
	Customer *Customer `gorm:"foreignKey:customer_id" json:"customer,omitempty"`

	types.Timestamps
}

// Blocks reports whether the booking holds its table against other requests.
func (b Booking) Blocks() bool {
	switch b.Status {
	case types.BOOKING_PENDING, types.BOOKING_CONFIRMED:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking lifecycle: pending may be confirmed,
// cancelled or rejected; confirmed may be cancelled or completed. Everything
// else is terminal.
func (b Booking) CanTransitionTo(next types.BookingStatus) bool {
	switch b.Status {
	case types.BOOKING_PENDING:
		return next == types.BOOKING_CONFIRMED ||
			next == types.BOOKING_CANCELLED ||
			next == types.BOOKING_REJECTED
	case types.BOOKING_CONFIRMED:
		return next == types.BOOKING_CANCELLED ||
			next == types.BOOKING_COMPLETED
	}
	return false
}
