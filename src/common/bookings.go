package common

import (
	"errors"
	"log"
	"time"

	"tablebook/src/availability"
	"tablebook/src/db"
	"tablebook/src/lib"
	"tablebook/src/lib/mailer"
	"tablebook/src/models"
	"tablebook/src/models/scopes"
	"tablebook/src/types"
	"tablebook/src/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoCapacity         = errors.New("no table large enough")
	ErrNoAvailability     = errors.New("no time slots available")
	ErrConcurrentConflict = errors.New("booking conflicts with a concurrent request")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrLocationClosed     = errors.New("location is closed on that date")
	ErrTableNotAvailable  = errors.New("requested table is not available")
)

func reasonErr(reason availability.Reason) error {
	if reason == availability.NoCapacity {
		return ErrNoCapacity
	}
	return ErrNoAvailability
}

// wrapTxErr folds database-level race outcomes into the structured conflict
// error so callers can tell "retry once" apart from a plain rejection.
// 40001 is serialization_failure, 40P01 is deadlock_detected.
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return ErrConcurrentConflict
		}
	}
	return err
}

// lockLocation takes the location row FOR UPDATE. Every booking write for a
// location funnels through this lock, so the availability re-check and the
// insert happen as one unit and two overlapping commits for the same
// table/window can never both succeed.
func lockLocation(tx *gorm.DB, locationId uint) (*models.Location, error) {
	var location models.Location
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&location, locationId).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownLocation
		}
		return nil, err
	}
	return &location, nil
}

func selectUnderLock(tx *gorm.DB, location *models.Location, date time.Time, clock string, guests uint, excludeBookingId uint) (availability.Decision, error) {
	var tables []models.Table
	if err := tx.Scopes(scopes.ForLocation(location.ID)).Find(&tables).Error; err != nil {
		return availability.Decision{}, err
	}
	iso := date.Format(availability.DateFormat)
	var bookings []models.Booking
	err := tx.
		Model(&models.Booking{}).
		Scopes(scopes.ForLocation(location.ID), scopes.OnDate(iso), scopes.Blocking).
		Find(&bookings).
		Error
	if err != nil {
		return availability.Decision{}, err
	}
	if excludeBookingId != 0 {
		kept := bookings[:0]
		for _, b := range bookings {
			if b.ID != excludeBookingId {
				kept = append(kept, b)
			}
		}
		bookings = kept
	}
	return availability.SelectTable(availability.Request{
		Date:     date,
		Time:     clock,
		Guests:   guests,
		Turnover: location.TurnoverTime,
		Tables:   tables,
		Bookings: bookings,
	})
}

// resolveTable honors an explicit table request when that table came back
// free, otherwise assigns the engine's best-fit choice.
func resolveTable(decision availability.Decision, requested *uint) (uint, error) {
	if !decision.Available {
		return 0, reasonErr(decision.Reason)
	}
	if requested == nil {
		return decision.TableID, nil
	}
	if *requested == decision.TableID {
		return *requested, nil
	}
	for _, id := range decision.Alternatives {
		if *requested == id {
			return *requested, nil
		}
	}
	return 0, ErrTableNotAvailable
}

// PlaceBooking runs the full commit contract: re-validate availability and
// insert the booking inside one transaction, per-location lock held.
func PlaceBooking(locationId uint, params *types.CreateBookingRequestBody, status types.BookingStatus) (*models.Booking, error) {
	date, err := utils.ParseDate(params.Date)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	conn := db.GetDb()
	err = conn.Transaction(func(tx *gorm.DB) error {
		location, err := lockLocation(tx, locationId)
		if err != nil {
			return err
		}

		if _, open := effectiveHoursTx(tx, location, date); !open {
			return ErrLocationClosed
		}

		decision, err := selectUnderLock(tx, location, date, params.Time, params.Guests, 0)
		if err != nil {
			return err
		}
		tableId, err := resolveTable(decision, params.TableID)
		if err != nil {
			return err
		}

		customer := models.Customer{Email: params.Customer.Email}
		if err := tx.
			Where(&models.Customer{Email: params.Customer.Email}).
			Assign(models.Customer{Name: params.Customer.Name, Phone: params.Customer.Phone}).
			FirstOrCreate(&customer).
			Error; err != nil {
			return err
		}

		code, err := utils.NewConfirmationCode()
		if err != nil {
			return err
		}
		booking = models.Booking{
			LocationID:       location.ID,
			TableID:          &tableId,
			Date:             params.Date,
			Time:             params.Time,
			Guests:           params.Guests,
			Status:           status,
			CustomerID:       customer.ID,
			ConfirmationCode: code,
			Notes:            params.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Customer = &customer
		booking.Location = location
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	lib.InvalidateMonthStatus(locationId)
	go func(b models.Booking) {
		if err := mailer.SendBookingConfirmation(&b, b.Location, b.Customer); err != nil {
			log.Printf("Could not send confirmation for booking %d: %s\n", b.ID, err.Error())
		}
	}(booking)
	return &booking, nil
}

// TransferBooking atomically releases the current table assignment and
// acquires a new one at the new date/time, subject to the same availability
// check as a fresh booking.
func TransferBooking(bookingId uint, params *types.TransferBookingRequestBody) (*models.Booking, error) {
	date, err := utils.ParseDate(params.Date)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	conn := db.GetDb()
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Blocks() {
			return ErrInvalidTransition
		}

		location, err := lockLocation(tx, booking.LocationID)
		if err != nil {
			return err
		}
		if _, open := effectiveHoursTx(tx, location, date); !open {
			return ErrLocationClosed
		}

		decision, err := selectUnderLock(tx, location, date, params.Time, booking.Guests, booking.ID)
		if err != nil {
			return err
		}
		tableId, err := resolveTable(decision, params.TableID)
		if err != nil {
			return err
		}

		return tx.
			Model(&models.Booking{}).
			Scopes(scopes.WithID(booking.ID)).
			Updates(map[string]any{
				"date":     params.Date,
				"time":     params.Time,
				"table_id": tableId,
			}).
			Error
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	lib.InvalidateMonthStatus(booking.LocationID)
	if err := conn.First(&booking, bookingId).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus applies one lifecycle transition, enforcing
// Booking.CanTransitionTo.
func UpdateBookingStatus(bookingId uint, next types.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingId).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		if err := tx.
			Model(&models.Booking{}).
			Scopes(scopes.WithID(booking.ID)).
			Update("status", next).
			Error; err != nil {
			return err
		}
		booking.Status = next
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	lib.InvalidateMonthStatus(booking.LocationID)
	return &booking, nil
}

// SweepCompletedBookings marks confirmed bookings whose occupied window has
// fully passed as completed, freeing their tables. Run periodically by the
// scheduler.
func SweepCompletedBookings() {
	conn := db.GetDb()
	now := time.Now()
	today := now.Format(availability.DateFormat)

	var candidates []models.Booking
	err := conn.
		Model(&models.Booking{}).
		Preload("Location").
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("date <= ?", today).
		Find(&candidates).
		Error
	if err != nil {
		log.Printf("Error sweeping bookings: %s\n", err.Error())
		return
	}

	var done []uint
	for _, b := range candidates {
		end, err := bookingWindowEnd(b)
		if err != nil {
			log.Printf("Skipping booking %d with bad date/time %q %q\n", b.ID, b.Date, b.Time)
			continue
		}
		if end.Before(now) {
			done = append(done, b.ID)
		}
	}
	if len(done) == 0 {
		return
	}
	err = conn.
		Model(&models.Booking{}).
		Where("id IN (?)", done).
		Update("status", types.BOOKING_COMPLETED).
		Error
	if err != nil {
		log.Printf("Error completing bookings %v: %s\n", done, err.Error())
		return
	}
	log.Printf("Marked %d bookings completed\n", len(done))
}

// bookingWindowEnd is the instant the booking's table frees up, anchored in
// the location's timezone. Booking dates and times are venue wall clock, so
// comparing them against time.Now on a server in another zone would free
// tables up to the zone offset early.
func bookingWindowEnd(b models.Booking) (time.Time, error) {
	date, err := utils.ParseDate(b.Date)
	if err != nil {
		return time.Time{}, err
	}
	tz := time.Local
	turnover := uint(90)
	if b.Location != nil {
		if b.Location.TurnoverTime > 0 {
			turnover = b.Location.TurnoverTime
		}
		if b.Location.Timezone != "" {
			if loc, err := time.LoadLocation(b.Location.Timezone); err == nil {
				tz = loc
			}
		}
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tz)
	_, end, err := availability.OccupiedWindow(date, b.Time, turnover)
	return end, err
}

func effectiveHoursTx(tx *gorm.DB, location *models.Location, date time.Time) (availability.Hours, bool) {
	iso := date.Format(availability.DateFormat)
	var closures []models.SpecialClosure
	tx.Scopes(scopes.ForLocation(location.ID)).Where("date = ?", iso).Find(&closures)
	var weekly []models.OpeningHour
	tx.Scopes(scopes.ForLocation(location.ID)).Find(&weekly)
	return availability.EffectiveHours(date, closures, weekly)
}
