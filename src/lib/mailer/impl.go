package mailer

import (
	"fmt"
	"os"

	"tablebook/src/lib"
	"tablebook/src/models"
)

// SendBookingConfirmation mails the guest their reference code. Best effort:
// a failed mail never fails the booking it confirms.
func SendBookingConfirmation(booking *models.Booking, location *models.Location, customer *models.Customer) error {
	from := os.Getenv("MAIL_FROM")
	fromName := os.Getenv("MAIL_FROM_NAME")
	if fromName == "" {
		fromName = location.Name
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour table at %s is booked for %s at %s (party of %d).\nConfirmation code: %s\n\nSee you soon!\n",
		customer.Name, location.Name, booking.Date, booking.Time, booking.Guests, booking.ConfirmationCode,
	)
	return lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: fromName,
		To:       []string{customer.Email},
		Subject:  fmt.Sprintf("Booking confirmed at %s", location.Name),
		Body:     body,
	})
}
