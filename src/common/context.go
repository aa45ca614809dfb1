package common

import (
	"errors"
	"time"

	"tablebook/src/availability"
	"tablebook/src/models"
	"tablebook/src/models/scopes"

	"gorm.io/gorm"
)

var ErrUnknownLocation = errors.New("unknown location")

// DayContext is everything the engine needs about one location and date.
type DayContext struct {
	Location models.Location
	Hours    *availability.Hours
	Open     bool
	Bookings []models.Booking
}

// LoadDayContext fetches a location with its tables, schedule and the given
// date's bookings. Read-only; the commit path re-fetches under lock.
func LoadDayContext(tx *gorm.DB, locationId uint, date time.Time) (*DayContext, error) {
	var location models.Location
	err := tx.
		Model(&models.Location{}).
		Preload("Tables").
		Preload("OpeningHours").
		Preload("SpecialClosures").
		First(&location, locationId).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownLocation
		}
		return nil, err
	}

	iso := date.Format(availability.DateFormat)
	var bookings []models.Booking
	err = tx.
		Model(&models.Booking{}).
		Scopes(scopes.ForLocation(locationId), scopes.OnDate(iso)).
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}

	hours, open := availability.EffectiveHours(date, location.SpecialClosures, location.OpeningHours)
	dc := &DayContext{
		Location: location,
		Open:     open,
		Bookings: bookings,
	}
	if open {
		dc.Hours = &hours
	}
	return dc, nil
}

// LocationBySlug resolves a public widget slug.
func LocationBySlug(tx *gorm.DB, slug string) (*models.Location, error) {
	var location models.Location
	err := tx.
		Model(&models.Location{}).
		Where(&models.Location{Slug: slug}).
		First(&location).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownLocation
		}
		return nil, err
	}
	return &location, nil
}
