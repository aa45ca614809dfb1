package availability

import (
	"time"

	"tablebook/src/models"
	"tablebook/src/types"
)

// DefaultTurnsPerTable is the assumed maximum seatings per table per day used
// by the day-status heuristic. It is a coarse capacity approximation for
// calendar views, not an exact slot-by-slot occupancy computation.
const DefaultTurnsPerTable = 5

// Thresholds for the day-status classification.
const (
	fullThreshold    = 1.0
	limitedThreshold = 0.7
)

// MonthParams carries one location's month of context for day classification.
// Bookings must cover the whole month for the location, any status.
type MonthParams struct {
	Year          int
	Month         time.Month
	Guests        uint
	TurnsPerTable int // 0 means DefaultTurnsPerTable
	Tables        []models.Table
	Bookings      []models.Booking
	Closures      []models.SpecialClosure
	Weekly        []models.OpeningHour
}

// MonthStatus classifies every day of the month as closed, full, limited or
// available, keyed by ISO date. Closed wins first; the rest comes from the
// percent-full heuristic over capacity-eligible tables.
func MonthStatus(p MonthParams) map[string]types.DayStatus {
	turns := p.TurnsPerTable
	if turns <= 0 {
		turns = DefaultTurnsPerTable
	}

	eligible := 0
	for _, t := range p.Tables {
		if t.Fits(p.Guests) {
			eligible++
		}
	}

	counts := countByDate(p.Bookings)

	out := make(map[string]types.DayStatus)
	for day := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC); day.Month() == p.Month; day = day.AddDate(0, 0, 1) {
		iso := day.Format(DateFormat)
		if _, open := EffectiveHours(day, p.Closures, p.Weekly); !open {
			out[iso] = types.DAY_CLOSED
			continue
		}
		out[iso] = classify(counts[iso], eligible*turns)
	}
	return out
}

func classify(count, capacity int) types.DayStatus {
	percentFull := 1.0
	if capacity > 0 {
		percentFull = float64(count) / float64(capacity)
	}
	switch {
	case percentFull >= fullThreshold:
		return types.DAY_FULL
	case percentFull >= limitedThreshold:
		return types.DAY_LIMITED
	default:
		return types.DAY_AVAILABLE
	}
}

// DayCount is one day's raw booking count for calendar dot indicators.
type DayCount struct {
	Count    int
	IsClosed bool
}

// MonthCounts groups bookings by calendar date, excluding cancelled and
// rejected ones, and overlays closure records: is_closed forces the day's
// displayed status closed regardless of count, an is_closed=false record
// forces it open. Unlike MonthStatus this view needs no table or capacity
// context; it answers "how busy is this day", not "can I book here".
func MonthCounts(year int, month time.Month, bookings []models.Booking, closures []models.SpecialClosure) map[string]DayCount {
	counts := countByDate(bookings)

	out := make(map[string]DayCount)
	for day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); day.Month() == month; day = day.AddDate(0, 0, 1) {
		iso := day.Format(DateFormat)
		out[iso] = DayCount{Count: counts[iso]}
	}
	for _, c := range closures {
		dc, ok := out[c.Date]
		if !ok {
			continue
		}
		dc.IsClosed = c.IsClosed
		out[c.Date] = dc
	}
	return out
}

func countByDate(bookings []models.Booking) map[string]int {
	counts := make(map[string]int)
	for _, b := range bookings {
		switch b.Status {
		case types.BOOKING_CANCELLED, types.BOOKING_REJECTED:
			continue
		}
		counts[b.Date]++
	}
	return counts
}
