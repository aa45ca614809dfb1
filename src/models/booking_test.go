package models

import (
	"testing"

	"tablebook/src/types"

	"github.com/stretchr/testify/assert"
)

func TestBookingBlocks(t *testing.T) {
	blocking := map[types.BookingStatus]bool{
		types.BOOKING_PENDING:   true,
		types.BOOKING_CONFIRMED: true,
		types.BOOKING_CANCELLED: false,
		types.BOOKING_REJECTED:  false,
		types.BOOKING_COMPLETED: false,
	}
	for status, want := range blocking {
		b := Booking{Status: status}
		assert.Equalf(t, want, b.Blocks(), "status %s", status)
	}
}

func TestBookingTransitions(t *testing.T) {
	allowed := []struct {
		from types.BookingStatus
		to   types.BookingStatus
	}{
		{types.BOOKING_PENDING, types.BOOKING_CONFIRMED},
		{types.BOOKING_PENDING, types.BOOKING_CANCELLED},
		{types.BOOKING_PENDING, types.BOOKING_REJECTED},
		{types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED},
		{types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED},
	}
	for _, tc := range allowed {
		b := Booking{Status: tc.from}
		assert.Truef(t, b.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from types.BookingStatus
		to   types.BookingStatus
	}{
		{types.BOOKING_PENDING, types.BOOKING_COMPLETED},
		{types.BOOKING_CONFIRMED, types.BOOKING_REJECTED},
		{types.BOOKING_CANCELLED, types.BOOKING_CONFIRMED},
		{types.BOOKING_REJECTED, types.BOOKING_PENDING},
		{types.BOOKING_COMPLETED, types.BOOKING_CANCELLED},
	}
	for _, tc := range denied {
		b := Booking{Status: tc.from}
		assert.Falsef(t, b.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
