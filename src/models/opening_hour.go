package models

import "tablebook/src/types"

// OpeningHour is one weekday entry of a location's weekly schedule.
// A weekday without an entry is closed unless a SpecialClosure overrides it.
type OpeningHour struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	LocationID uint   `gorm:"uniqueIndex:idx_location_weekday" json:"location_id,omitempty"`
	DayOfWeek  int    `gorm:"uniqueIndex:idx_location_weekday" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	OpensAt    string `gorm:"default:'10:00'" json:"opens_at,omitempty"`
	ClosesAt   string `gorm:"default:'22:00'" json:"closes_at,omitempty"`

	types.Timestamps
}
