package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"tablebook/src/common"
	"tablebook/src/db"
	"tablebook/src/lib"
	"tablebook/src/models"
	"tablebook/src/models/scopes"
	"tablebook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

// bookingError maps the commit-path error taxonomy to HTTP responses.
// "Not available" outcomes are structured rejections, never 500s.
func bookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNoCapacity):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "no_table_large_enough"})
	case errors.Is(err, common.ErrNoAvailability):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "no_time_slots_available"})
	case errors.Is(err, common.ErrTableNotAvailable):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "table_not_available"})
	case errors.Is(err, common.ErrLocationClosed):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "location_closed"})
	case errors.Is(err, common.ErrConcurrentConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "concurrent_conflict", "retryable": true})
	case errors.Is(err, common.ErrInvalidTransition):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrBookingNotFound), errors.Is(err, common.ErrUnknownLocation):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			locationId := resolveLocationId(ctx)
			var query types.BookingsListQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.
				Model(&models.Booking{}).
				Scopes(scopes.ForLocation(locationId)).
				Preload("Table").
				Preload("Customer")
			if query.Date != "" {
				q = q.Scopes(scopes.OnDate(query.Date))
			}
			if query.Status != "" {
				q = q.Where("status = ?", query.Status)
			}
			var bookings []models.Booking
			if err := q.Order("date asc, time asc").Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			err := db.
				Model(&models.Booking{}).
				Preload("Location").
				Preload("Table").
				Preload("Customer").
				First(&booking, params.ID).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			locationId := resolveLocationId(ctx)
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Staff-placed bookings skip the pending step.
			booking, err := common.PlaceBooking(locationId, &body, types.BOOKING_CONFIRMED)
			if err != nil {
				bookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/confirm", bookingStatusHandler(types.BOOKING_CONFIRMED)).
		PUT("/bookings/:id/cancel", bookingStatusHandler(types.BOOKING_CANCELLED)).
		PUT("/bookings/:id/reject", bookingStatusHandler(types.BOOKING_REJECTED)).
		PUT("/bookings/:id/complete", bookingStatusHandler(types.BOOKING_COMPLETED)).
		PUT("/bookings/:id/transfer", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.TransferBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.TransferBooking(params.ID, &body)
			if err != nil {
				bookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.First(&booking, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}

			filename := fmt.Sprintf("booking-%d-%s.jpeg", booking.ID, booking.ConfirmationCode)
			rd := lib.GetRedisClient()
			if rd != nil {
				cached, err := rd.Get(context.Background(), filename).Result()
				if err == nil && cached != "" {
					if _, err := os.Stat(cached); err == nil {
						ctx.File(cached)
						return
					}
				}
			}

			qrc, err := qrcode.New(booking.ConfirmationCode)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate code"})
				return
			}
			filepath := path.Join(os.TempDir(), filename)
			if err := qrc.Save(filepath); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate code"})
				return
			}
			if rd != nil {
				rd.SetEx(context.Background(), filename, filepath, 2*time.Hour)
			}
			ctx.File(filepath)
		})
	return g
}

func bookingStatusHandler(next types.BookingStatus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		booking, err := common.UpdateBookingStatus(params.ID, next)
		if err != nil {
			bookingError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": booking})
	}
}
