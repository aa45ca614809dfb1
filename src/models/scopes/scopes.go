package scopes

import (
	"tablebook/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func ForLocation(locationId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("location_id = ?", locationId)
	}
}

func OnDate(date string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("date = ?", date)
	}
}

// Blocking keeps only the bookings that hold their table.
func Blocking(db *gorm.DB) *gorm.DB {
	return db.Where("status IN (?)", []types.BookingStatus{
		types.BOOKING_PENDING,
		types.BOOKING_CONFIRMED,
	})
}

// Counted keeps the bookings that count toward day/month occupancy figures,
// i.e. everything except cancelled and rejected.
func Counted(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN (?)", []types.BookingStatus{
		types.BOOKING_CANCELLED,
		types.BOOKING_REJECTED,
	})
}
