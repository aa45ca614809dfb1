package availability

import (
	"testing"
	"time"

	"tablebook/src/models"
	"tablebook/src/types"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestAvailableSlotsEmptyWhenNoTableFits(t *testing.T) {
	slots, err := AvailableSlots(SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   8,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 4}, {ID: 2, Capacity: 6}},
	})
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsClippedToHours(t *testing.T) {
	slots, err := AvailableSlots(SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Hours:    &Hours{OpensAt: "18:00", ClosesAt: "20:00"},
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
	})
	assert.NoError(t, err)
	// Half-open window: the grid stops strictly before closing time.
	assert.Equal(t, []string{"18:00", "18:30", "19:00", "19:30"}, slots)
}

func TestAvailableSlotsDefaultWindow(t *testing.T) {
	slots, err := AvailableSlots(SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 2}},
	})
	assert.NoError(t, err)
	// 10:00 through 21:30 at 30-minute steps.
	assert.Len(t, slots, 24)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "21:30", slots[len(slots)-1])
}

func TestAvailableSlotsTurnoverBlocksWindow(t *testing.T) {
	// Single table, one booking at 18:00 with 90-minute turnover: every slot
	// whose window crosses [18:00, 19:30) disappears; 19:30 itself is a
	// boundary touch and stays.
	q := SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Hours:    &Hours{OpensAt: "17:00", ClosesAt: "21:00"},
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
		Bookings: []models.Booking{
			{ID: 10, TableID: uintPtr(1), Date: "2025-06-14", Time: "18:00", Status: types.BOOKING_CONFIRMED},
		},
	}
	slots, err := AvailableSlots(q)
	assert.NoError(t, err)
	assert.Equal(t, []string{"17:00", "17:30", "19:30", "20:00", "20:30"}, slots)
	assert.NotContains(t, slots, "19:00")

	// 17:00 would end at 18:30 with a 90-minute turnover and should vanish
	// too once the turnover is long enough to reach the booking.
	q.Turnover = 120
	slots, err = AvailableSlots(q)
	assert.NoError(t, err)
	assert.NotContains(t, slots, "17:00")
	assert.Contains(t, slots, "20:00")
}

func TestAvailableSlotsIgnoresNonBlockingBookings(t *testing.T) {
	q := SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Hours:    &Hours{OpensAt: "18:00", ClosesAt: "20:00"},
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
		Bookings: []models.Booking{
			{ID: 10, TableID: uintPtr(1), Date: "2025-06-14", Time: "18:00", Status: types.BOOKING_CANCELLED},
			{ID: 11, TableID: uintPtr(1), Date: "2025-06-14", Time: "18:30", Status: types.BOOKING_REJECTED},
			{ID: 12, TableID: uintPtr(1), Date: "2025-06-14", Time: "19:00", Status: types.BOOKING_COMPLETED},
		},
	}
	slots, err := AvailableSlots(q)
	assert.NoError(t, err)
	assert.Equal(t, []string{"18:00", "18:30", "19:00", "19:30"}, slots)
}

func TestAvailableSlotsSecondTableKeepsSlotOpen(t *testing.T) {
	q := SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Hours:    &Hours{OpensAt: "18:00", ClosesAt: "19:00"},
		Tables:   []models.Table{{ID: 1, Capacity: 4}, {ID: 2, Capacity: 2}},
		Bookings: []models.Booking{
			{ID: 10, TableID: uintPtr(1), Date: "2025-06-14", Time: "18:00", Status: types.BOOKING_PENDING},
		},
	}
	slots, err := AvailableSlots(q)
	assert.NoError(t, err)
	assert.Equal(t, []string{"18:00", "18:30"}, slots)
}

func TestAvailableSlotsMalformedBookingTime(t *testing.T) {
	_, err := AvailableSlots(SlotQuery{
		Date:     date(2025, time.June, 14),
		Guests:   2,
		Turnover: 90,
		Tables:   []models.Table{{ID: 1, Capacity: 4}},
		Bookings: []models.Booking{
			{ID: 10, TableID: uintPtr(1), Date: "2025-06-14", Time: "six", Status: types.BOOKING_CONFIRMED},
		},
	})
	assert.Error(t, err)
}
