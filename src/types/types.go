package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_REJECTED  BookingStatus = "rejected"
	BOOKING_COMPLETED BookingStatus = "completed"
)

// DayStatus classifies a calendar day for the booking calendar picker.
type DayStatus string

const (
	DAY_CLOSED    DayStatus = "closed"
	DAY_FULL      DayStatus = "full"
	DAY_LIMITED   DayStatus = "limited"
	DAY_AVAILABLE DayStatus = "available"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type LocationSlugParams struct {
	Slug string `uri:"slug" binding:"required"`
}

type CreateLocationRequestBody struct {
	Name         string `json:"name" binding:"required"`
	Timezone     string `json:"timezone,omitempty"`
	TurnoverTime uint   `json:"turnover_time,omitempty" binding:"omitempty,min=10,max=600"`
}

type UpdateLocationRequestBody struct {
	Name         string `json:"name,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	TurnoverTime uint   `json:"turnover_time,omitempty" binding:"omitempty,min=10,max=600"`
}

type OpeningHourInput struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	OpensAt   string `json:"opens_at" binding:"required,restime"`
	ClosesAt  string `json:"closes_at" binding:"required,restime"`
}

type SetOpeningHoursRequestBody struct {
	Hours []OpeningHourInput `json:"hours" binding:"required,dive"`
}

type CreateClosureRequestBody struct {
	Date     string  `json:"date" binding:"required,resdate"`
	IsClosed bool    `json:"is_closed"`
	OpensAt  *string `json:"opens_at,omitempty" binding:"omitempty,restime"`
	ClosesAt *string `json:"closes_at,omitempty" binding:"omitempty,restime"`
	Note     string  `json:"note,omitempty"`
}

type CreateTableRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Capacity uint   `json:"capacity" binding:"required,min=1"`
}

type BookingCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type CreateBookingRequestBody struct {
	Date     string               `json:"date" binding:"required,resdate"`
	Time     string               `json:"time" binding:"required,restime"`
	Guests   uint                 `json:"guests" binding:"required,min=1"`
	TableID  *uint                `json:"table_id,omitempty"`
	Notes    string               `json:"notes,omitempty"`
	Customer BookingCustomerInput `json:"customer" binding:"required"`
}

type TransferBookingRequestBody struct {
	Date    string `json:"date" binding:"required,resdate"`
	Time    string `json:"time" binding:"required,restime"`
	TableID *uint  `json:"table_id,omitempty"`
}

type MonthStatusQuery struct {
	Year   int  `form:"year" binding:"required,min=2000,max=2200"`
	Month  int  `form:"month" binding:"required,min=1,max=12"`
	Guests uint `form:"guests,default=2" binding:"omitempty,min=1"`
}

type DayCountsQuery struct {
	Year     int   `form:"year" binding:"required,min=2000,max=2200"`
	Month    int   `form:"month" binding:"required,min=1,max=12"`
	Location *uint `form:"location,omitempty"`
}

type SlotsQuery struct {
	Date   string `form:"date" binding:"required,resdate"`
	Guests uint   `form:"guests,default=2" binding:"omitempty,min=1"`
}

type CheckAvailabilityQuery struct {
	Date   string `form:"date" binding:"required,resdate"`
	Time   string `form:"time" binding:"required,restime"`
	Guests uint   `form:"guests,default=2" binding:"omitempty,min=1"`
}

type BookingsListQuery struct {
	Date   string `form:"date,omitempty" binding:"omitempty,resdate"`
	Status string `form:"status,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Location    uint
	jwt.RegisteredClaims
}

type APIResponseBooking struct {
	ID               uint       `json:"id"`
	LocationID       uint       `json:"location_id,omitempty"`
	TableID          *uint      `json:"table_id,omitempty"`
	Date             string     `json:"date,omitempty"`
	Time             string     `json:"time,omitempty"`
	Guests           uint       `json:"guests,omitempty"`
	Status           string     `json:"status,omitempty"`
	ConfirmationCode string     `json:"confirmation_code,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

type APIResponseDayCount struct {
	Count    int  `json:"count"`
	IsClosed bool `json:"is_closed"`
}

type APIResponseCheck struct {
	Available    bool   `json:"available"`
	TableID      uint   `json:"table_id,omitempty"`
	Alternatives []uint `json:"alternatives,omitempty"`
	Reason       string `json:"reason,omitempty"`
}
