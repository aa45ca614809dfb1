package availability

import (
	"time"

	"tablebook/src/models"
)

// Hours is an open/close pair of "HH:mm" wall-clock times.
type Hours struct {
	OpensAt  string
	ClosesAt string
}

// DefaultHours is the venue-wide fallback window used when a day has no
// explicit schedule but is forced open by a closure override.
var DefaultHours = Hours{OpensAt: "10:00", ClosesAt: "22:00"}

const DateFormat = "2006-01-02"

// EffectiveHours resolves the hours for one calendar date. A SpecialClosure
// for the date wins: is_closed forces the day closed, otherwise it forces the
// day open, with its own hours when set. Without a closure the weekly
// OpeningHour for the weekday applies, and a weekday without an entry is
// closed.
func EffectiveHours(date time.Time, closures []models.SpecialClosure, weekly []models.OpeningHour) (Hours, bool) {
	iso := date.Format(DateFormat)
	for _, c := range closures {
		if c.Date != iso {
			continue
		}
		if c.IsClosed {
			return Hours{}, false
		}
		hours, ok := weekdayHours(date, weekly)
		if !ok {
			hours = DefaultHours
		}
		if c.OpensAt != nil && *c.OpensAt != "" {
			hours.OpensAt = *c.OpensAt
		}
		if c.ClosesAt != nil && *c.ClosesAt != "" {
			hours.ClosesAt = *c.ClosesAt
		}
		return hours, true
	}
	return weekdayHours(date, weekly)
}

func weekdayHours(date time.Time, weekly []models.OpeningHour) (Hours, bool) {
	weekday := int(date.Weekday())
	for _, h := range weekly {
		if h.DayOfWeek == weekday {
			return Hours{OpensAt: h.OpensAt, ClosesAt: h.ClosesAt}, true
		}
	}
	return Hours{}, false
}
