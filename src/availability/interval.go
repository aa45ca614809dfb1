// Package availability is the reservation engine: pure computation over
// in-memory table, booking, opening-hour and closure records. It performs no
// I/O; callers fetch the relevant day's records and hand them in.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a local wall-clock "HH:mm" string into minutes of day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour*60 + minute, nil
}

func clockOnDate(date time.Time, clock string) (time.Time, error) {
	mins, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, date.Location()), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OccupiedWindow combines a calendar date and an "HH:mm" time into the
// half-open interval [start, start+turnover) during which a table is held.
// The date and time are the source of truth for the location's local time;
// no timezone conversion happens here.
func OccupiedWindow(date time.Time, clock string, turnoverMinutes uint) (time.Time, time.Time, error) {
	start, err := clockOnDate(date, clock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.Add(time.Duration(turnoverMinutes) * time.Minute)
	return start, end, nil
}

// Overlaps compares two half-open intervals. Exact touching (one window's
// end equals the other's start) is not an overlap, so back-to-back bookings
// at the instant of turnover are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
