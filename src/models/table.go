package models

import "tablebook/src/types"

type Table struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	LocationID uint   `gorm:"index" json:"location_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Capacity   uint   `json:"capacity,omitempty"`

	Location *Location `gorm:"foreignKey:location_id" json:"-"`

	types.Timestamps
}

// Fits reports whether the table can seat the party at all.
func (t Table) Fits(guests uint) bool {
	return t.Capacity >= guests
}
