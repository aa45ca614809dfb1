package models

import (
	"tablebook/src/types"

	"github.com/google/uuid"
)

type Location struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Slug     string `gorm:"uniqueIndex" json:"slug,omitempty"`
	Timezone string `gorm:"default:'UTC'" json:"timezone,omitempty"`
	// TurnoverTime is the number of minutes a table stays occupied after a
	// booking's start time. Applied uniformly to every booking at this
	// location at query time; never stored per booking.
	TurnoverTime uint         `gorm:"default:90" json:"turnover_time,omitempty"`
	TenantID     *uuid.UUID   `gorm:"type:uuid" json:"-"`
	Meta         *types.JSONB `gorm:"type:jsonb" json:"meta,omitempty"`

	Tables          []Table          `gorm:"foreignKey:location_id" json:"tables,omitempty"`
	OpeningHours    []OpeningHour    `gorm:"foreignKey:location_id" json:"opening_hours,omitempty"`
	SpecialClosures []SpecialClosure `gorm:"foreignKey:location_id" json:"special_closures,omitempty"`
	Bookings        []Booking        `gorm:"foreignKey:location_id" json:"bookings,omitempty"`

	types.Timestamps
}
