package models

import "tablebook/src/types"

// SpecialClosure overrides the weekly schedule for one calendar date.
// IsClosed forces the day closed; IsClosed=false forces it open, optionally
// with its own hours. At most one record exists per (location, date).
type SpecialClosure struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	LocationID uint    `gorm:"uniqueIndex:idx_location_date" json:"location_id,omitempty"`
	Date       string  `gorm:"uniqueIndex:idx_location_date" json:"date"` // YYYY-MM-DD
	IsClosed   bool    `json:"is_closed"`
	OpensAt    *string `json:"opens_at,omitempty"`
	ClosesAt   *string `json:"closes_at,omitempty"`
	Note       string  `json:"note,omitempty"`

	types.Timestamps
}
