package main

import (
	"net/http"
	"time"

	"tablebook/src/common"
	"tablebook/src/db"
	"tablebook/src/models"
	"tablebook/src/types"
	"tablebook/src/utils"

	"github.com/gin-gonic/gin"
)

// widgetHandlers is the public, unauthenticated surface the embeddable
// booking widget talks to. Locations are addressed by slug and every
// response goes through the trimmed API shapes so internal fields never
// leak to the embedding page.
func widgetHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/:slug/month", func(ctx *gin.Context) {
			location, ok := widgetLocation(ctx)
			if !ok {
				return
			}
			var query types.MonthStatusQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			statuses, err := monthStatusFor(location.ID, query.Year, time.Month(query.Month), query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": statuses})
		}).
		GET("/:slug/slots", func(ctx *gin.Context) {
			location, ok := widgetLocation(ctx)
			if !ok {
				return
			}
			var query types.SlotsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			slots, err := slotsFor(location.ID, query.Date, query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": slots, "count": len(slots)})
		}).
		GET("/:slug/check", func(ctx *gin.Context) {
			location, ok := widgetLocation(ctx)
			if !ok {
				return
			}
			var query types.CheckAvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			result, err := checkFor(location.ID, query.Date, query.Time, query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		POST("/:slug/bookings", func(ctx *gin.Context) {
			location, ok := widgetLocation(ctx)
			if !ok {
				return
			}
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := utils.ParseDate(body.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Guests cannot book into the past; staff can backfill.
			today := time.Now().Truncate(24 * time.Hour)
			if date.Before(today) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "date must not be in the past"})
				return
			}
			// Explicit table choice is a staff privilege.
			body.TableID = nil
			booking, err := common.PlaceBooking(location.ID, &body, types.BOOKING_PENDING)
			if err != nil {
				bookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": utils.ToAPIBooking(booking)})
		})
	return g
}

func widgetLocation(ctx *gin.Context) (*models.Location, bool) {
	var params types.LocationSlugParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Status(http.StatusBadRequest)
		return nil, false
	}
	location, err := common.LocationBySlug(db.GetDb(), params.Slug)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown location"})
		return nil, false
	}
	return location, true
}
