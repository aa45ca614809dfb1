package availability

import (
	"testing"
	"time"

	"tablebook/src/models"
	"tablebook/src/types"

	"github.com/stretchr/testify/assert"
)

func TestSelectTableNoCapacity(t *testing.T) {
	d, err := SelectTable(Request{
		Date:     date(2025, time.June, 14),
		Time:     "19:00",
		Guests:   10,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
	})
	assert.NoError(t, err)
	assert.False(t, d.Available)
	assert.Equal(t, NoCapacity, d.Reason)
}

func TestSelectTableTurnoverBoundary(t *testing.T) {
	// Location turnover=90, one table capacity=4, existing booking at 18:00.
	tables := []models.Table{{ID: 1, Capacity: 4}}
	bookings := []models.Booking{
		{ID: 5, TableID: uintPtr(1), Date: "2025-06-14", Time: "18:00", Status: types.BOOKING_CONFIRMED},
	}

	// 19:00 starts before the 19:30 turnover boundary: busy.
	d, err := SelectTable(Request{
		Date: date(2025, time.June, 14), Time: "19:00", Guests: 2, Turnover: 90,
		Tables: tables, Bookings: bookings,
	})
	assert.NoError(t, err)
	assert.False(t, d.Available)
	assert.Equal(t, NoAvailability, d.Reason)

	// 19:30 touches the boundary exactly: free.
	d, err = SelectTable(Request{
		Date: date(2025, time.June, 14), Time: "19:30", Guests: 2, Turnover: 90,
		Tables: tables, Bookings: bookings,
	})
	assert.NoError(t, err)
	assert.True(t, d.Available)
	assert.Equal(t, uint(1), d.TableID)
}

func TestSelectTableBestFit(t *testing.T) {
	// capacity=2 and capacity=6 both free; a party of 2 gets the small table.
	d, err := SelectTable(Request{
		Date:     date(2025, time.June, 14),
		Time:     "19:00",
		Guests:   2,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 6}, {ID: 2, Capacity: 2}},
	})
	assert.NoError(t, err)
	assert.True(t, d.Available)
	assert.Equal(t, uint(2), d.TableID)
	assert.Equal(t, []uint{1}, d.Alternatives)
}

func TestSelectTableTieBreakByID(t *testing.T) {
	d, err := SelectTable(Request{
		Date:     date(2025, time.June, 14),
		Time:     "19:00",
		Guests:   2,
		Turnover: 90,
		Tables:   []models.Table{{ID: 7, Capacity: 4}, {ID: 3, Capacity: 4}},
	})
	assert.NoError(t, err)
	assert.True(t, d.Available)
	assert.Equal(t, uint(3), d.TableID)
	assert.Equal(t, []uint{7}, d.Alternatives)
}

func TestSelectTableIdempotent(t *testing.T) {
	q := Request{
		Date:     date(2025, time.June, 14),
		Time:     "19:00",
		Guests:   4,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 4}, {ID: 2, Capacity: 6}},
		Bookings: []models.Booking{
			{ID: 5, TableID: uintPtr(2), Date: "2025-06-14", Time: "18:30", Status: types.BOOKING_PENDING},
		},
	}
	first, err := SelectTable(q)
	assert.NoError(t, err)
	second, err := SelectTable(q)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectTableMalformedTime(t *testing.T) {
	_, err := SelectTable(Request{
		Date:     date(2025, time.June, 14),
		Time:     "7 pm",
		Guests:   2,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
	})
	assert.Error(t, err)
}
