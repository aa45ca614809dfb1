package availability

import (
	"sort"
	"time"

	"tablebook/src/models"
)

// Reason distinguishes why an exact-time request cannot be served.
type Reason string

const (
	// NoCapacity means no table at the location can ever seat the party.
	NoCapacity Reason = "no_table_large_enough"
	// NoAvailability means eligible tables exist but all are busy for the
	// requested window.
	NoAvailability Reason = "no_time_slots_available"
)

// Request is one exact (date, time, guests) availability question.
type Request struct {
	Date     time.Time
	Time     string
	Guests   uint
	Turnover uint
	Tables   []models.Table
	Bookings []models.Booking
}

// Decision is the structured answer: never a thrown fault for "not
// available", only for malformed input.
type Decision struct {
	Available    bool
	TableID      uint
	Alternatives []uint
	Reason       Reason
}

// SelectTable decides whether a booking can be placed and which table to
// assign. Selection is best fit: the smallest capacity that still seats the
// party, ties broken by lowest table ID so the decision is reproducible.
func SelectTable(q Request) (Decision, error) {
	candidates := make([]models.Table, 0, len(q.Tables))
	for _, t := range q.Tables {
		if t.Fits(q.Guests) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return Decision{Available: false, Reason: NoCapacity}, nil
	}

	start, end, err := OccupiedWindow(q.Date, q.Time, q.Turnover)
	if err != nil {
		return Decision{}, err
	}
	busy, err := occupiedWindows(q.Date, q.Bookings, q.Turnover)
	if err != nil {
		return Decision{}, err
	}

	free := make([]models.Table, 0, len(candidates))
	for _, t := range candidates {
		if tableFree(t.ID, busy, start, end) {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return Decision{Available: false, Reason: NoAvailability}, nil
	}

	sort.Slice(free, func(i, j int) bool {
		if free[i].Capacity != free[j].Capacity {
			return free[i].Capacity < free[j].Capacity
		}
		return free[i].ID < free[j].ID
	})

	alternatives := make([]uint, 0, len(free)-1)
	for _, t := range free[1:] {
		alternatives = append(alternatives, t.ID)
	}
	return Decision{Available: true, TableID: free[0].ID, Alternatives: alternatives}, nil
}
