package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"tablebook/src/config"
	"tablebook/src/models"
	"tablebook/src/types"

	"github.com/gosimple/slug"
)

// ParseDate parses an ISO "YYYY-MM-DD" calendar date. The result is a local
// wall-clock midnight; no timezone conversion is applied.
func ParseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return parsed, nil
}

// MonthInterval returns the first and last ISO dates of a month, for
// BETWEEN queries over the bookings table.
func MonthInterval(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(config.DATE_PARSE_FORMAT), last.Format(config.DATE_PARSE_FORMAT)
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewConfirmationCode returns a short human-readable booking reference.
// Ambiguous characters (0/O, 1/I) are left out of the alphabet.
func NewConfirmationCode() (string, error) {
	code := make([]byte, 8)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// MakeSlug builds the URL slug the public widget addresses a location by.
func MakeSlug(name string) string {
	return slug.Make(name)
}

// ToAPIBooking shapes a booking for public responses, hiding internal
// associations.
func ToAPIBooking(b *models.Booking) types.APIResponseBooking {
	createdAt := b.CreatedAt
	return types.APIResponseBooking{
		ID:               b.ID,
		LocationID:       b.LocationID,
		TableID:          b.TableID,
		Date:             b.Date,
		Time:             b.Time,
		Guests:           b.Guests,
		Status:           string(b.Status),
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        &createdAt,
	}
}
