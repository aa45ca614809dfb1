package availability

import (
	"time"

	"tablebook/src/models"
)

// SlotStepMinutes is the candidate grid granularity.
const SlotStepMinutes = 30

// SlotQuery asks for the bookable start times at one location on one date.
// Bookings must be the location's bookings for that date, any status; the
// engine filters out the ones that do not block.
type SlotQuery struct {
	Date     time.Time
	Guests   uint
	Turnover uint
	Hours    *Hours // nil means the day has no explicit schedule; DefaultHours applies
	Tables   []models.Table
	Bookings []models.Booking
}

// AvailableSlots returns the ordered "HH:mm" start times for which at least
// one capacity-eligible table is free for [t, t+turnover). Empty when the
// day is closed upstream, when no table can ever seat the party, or when
// every candidate window is taken.
func AvailableSlots(q SlotQuery) ([]string, error) {
	eligible := make([]models.Table, 0, len(q.Tables))
	for _, t := range q.Tables {
		if t.Fits(q.Guests) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return []string{}, nil
	}

	hours := DefaultHours
	if q.Hours != nil {
		hours = *q.Hours
	}
	open, err := ParseClock(hours.OpensAt)
	if err != nil {
		return nil, err
	}
	close, err := ParseClock(hours.ClosesAt)
	if err != nil {
		return nil, err
	}

	busy, err := occupiedWindows(q.Date, q.Bookings, q.Turnover)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for t := open; t < close; t += SlotStepMinutes {
		clock := formatClock(t)
		start, end, err := OccupiedWindow(q.Date, clock, q.Turnover)
		if err != nil {
			return nil, err
		}
		for _, table := range eligible {
			if tableFree(table.ID, busy, start, end) {
				slots = append(slots, clock)
				break
			}
		}
	}
	return slots, nil
}

type window struct {
	tableId uint
	start   time.Time
	end     time.Time
}

func occupiedWindows(date time.Time, bookings []models.Booking, turnover uint) ([]window, error) {
	windows := make([]window, 0, len(bookings))
	for _, b := range bookings {
		if !b.Blocks() || b.TableID == nil {
			continue
		}
		start, end, err := OccupiedWindow(date, b.Time, turnover)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window{tableId: *b.TableID, start: start, end: end})
	}
	return windows, nil
}

func tableFree(tableId uint, busy []window, start, end time.Time) bool {
	for _, w := range busy {
		if w.tableId == tableId && Overlaps(start, end, w.start, w.end) {
			return false
		}
	}
	return true
}
