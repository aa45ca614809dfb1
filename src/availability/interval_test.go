package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"12:00:00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOccupiedWindow(t *testing.T) {
	day := date(2025, time.June, 14)
	start, end, err := OccupiedWindow(day, "18:00", 90)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 14, 18, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 14, 19, 30, 0, 0, time.UTC), end)

	_, _, err = OccupiedWindow(day, "6pm", 90)
	assert.Error(t, err)
}

func TestOverlapsHalfOpen(t *testing.T) {
	day := date(2025, time.June, 14)
	at := func(clock string) time.Time {
		ts, err := clockOnDate(day, clock)
		assert.NoError(t, err)
		return ts
	}

	// Touching endpoints do not overlap: back-to-back at the turnover instant.
	assert.False(t, Overlaps(at("18:00"), at("19:30"), at("19:30"), at("21:00")))
	assert.False(t, Overlaps(at("19:30"), at("21:00"), at("18:00"), at("19:30")))

	// Zero-width interval against itself.
	assert.False(t, Overlaps(at("18:00"), at("18:00"), at("18:00"), at("18:00")))

	// Real overlap, and symmetric.
	assert.True(t, Overlaps(at("18:00"), at("19:30"), at("19:00"), at("20:30")))
	assert.True(t, Overlaps(at("19:00"), at("20:30"), at("18:00"), at("19:30")))

	// Containment.
	assert.True(t, Overlaps(at("18:00"), at("22:00"), at("19:00"), at("19:30")))
}
