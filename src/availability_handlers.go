package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"tablebook/src/availability"
	"tablebook/src/common"
	"tablebook/src/db"
	"tablebook/src/lib"
	"tablebook/src/models"
	"tablebook/src/models/scopes"
	"tablebook/src/types"
	"tablebook/src/utils"

	"github.com/gin-gonic/gin"
)

// resolveLocationId prefers an explicit ?location= filter, falling back to
// the staff user's active location from the auth middleware.
func resolveLocationId(ctx *gin.Context) uint {
	if loc := ctx.Query("location"); loc != "" {
		atoi, err := strconv.Atoi(loc)
		if err == nil && atoi > 0 {
			return uint(atoi)
		}
	}
	return ctx.GetUint("location")
}

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/availability/month", func(ctx *gin.Context) {
			var query types.MonthStatusQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			locationId := resolveLocationId(ctx)
			if locationId == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing location"})
				return
			}

			if cached := lib.GetCachedMonthStatus(locationId, query.Year, query.Month, query.Guests); cached != "" {
				ctx.JSON(http.StatusOK, gin.H{"data": json.RawMessage(cached)})
				return
			}

			statuses, err := monthStatusFor(locationId, query.Year, time.Month(query.Month), query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			if payload, err := json.Marshal(statuses); err == nil {
				lib.CacheMonthStatus(locationId, query.Year, query.Month, query.Guests, string(payload))
			} else {
				log.Printf("Could not serialize month statuses: %s\n", err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": statuses})
		}).
		GET("/availability/days", func(ctx *gin.Context) {
			var query types.DayCountsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			first, last := utils.MonthInterval(query.Year, time.Month(query.Month))

			conn := db.GetDb()
			bookingsQuery := conn.
				Model(&models.Booking{}).
				Scopes(scopes.Counted).
				Where("date BETWEEN ? AND ?", first, last)
			closuresQuery := conn.
				Model(&models.SpecialClosure{}).
				Where("date BETWEEN ? AND ?", first, last)
			if query.Location != nil {
				bookingsQuery = bookingsQuery.Scopes(scopes.ForLocation(*query.Location))
				closuresQuery = closuresQuery.Scopes(scopes.ForLocation(*query.Location))
			}
			var bookings []models.Booking
			if err := bookingsQuery.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var closures []models.SpecialClosure
			if err := closuresQuery.Find(&closures).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}

			counts := availability.MonthCounts(query.Year, time.Month(query.Month), bookings, closures)
			data := make(map[string]types.APIResponseDayCount, len(counts))
			for iso, dc := range counts {
				data[iso] = types.APIResponseDayCount{Count: dc.Count, IsClosed: dc.IsClosed}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data})
		}).
		GET("/availability/slots", func(ctx *gin.Context) {
			var query types.SlotsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			locationId := resolveLocationId(ctx)
			slots, err := slotsFor(locationId, query.Date, query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": slots, "count": len(slots)})
		}).
		GET("/availability/check", func(ctx *gin.Context) {
			var query types.CheckAvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			locationId := resolveLocationId(ctx)
			result, err := checkFor(locationId, query.Date, query.Time, query.Guests)
			if err != nil {
				availabilityError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})
	return g
}

func availabilityError(ctx *gin.Context, err error) {
	if err == common.ErrUnknownLocation {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func monthStatusFor(locationId uint, year int, month time.Month, guests uint) (map[string]types.DayStatus, error) {
	conn := db.GetDb()
	var location models.Location
	err := conn.
		Model(&models.Location{}).
		Preload("Tables").
		Preload("OpeningHours").
		Preload("SpecialClosures").
		First(&location, locationId).
		Error
	if err != nil {
		return nil, common.ErrUnknownLocation
	}

	first, last := utils.MonthInterval(year, month)
	var bookings []models.Booking
	err = conn.
		Model(&models.Booking{}).
		Scopes(scopes.ForLocation(locationId), scopes.Counted).
		Where("date BETWEEN ? AND ?", first, last).
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}

	return availability.MonthStatus(availability.MonthParams{
		Year:     year,
		Month:    month,
		Guests:   guests,
		Tables:   location.Tables,
		Bookings: bookings,
		Closures: location.SpecialClosures,
		Weekly:   location.OpeningHours,
	}), nil
}

func slotsFor(locationId uint, dateISO string, guests uint) ([]string, error) {
	date, err := utils.ParseDate(dateISO)
	if err != nil {
		return nil, err
	}
	conn := db.GetDb()
	dc, err := common.LoadDayContext(conn, locationId, date)
	if err != nil {
		return nil, err
	}
	if !dc.Open {
		return []string{}, nil
	}
	return availability.AvailableSlots(availability.SlotQuery{
		Date:     date,
		Guests:   guests,
		Turnover: dc.Location.TurnoverTime,
		Hours:    dc.Hours,
		Tables:   dc.Location.Tables,
		Bookings: dc.Bookings,
	})
}

func checkFor(locationId uint, dateISO, clock string, guests uint) (*types.APIResponseCheck, error) {
	date, err := utils.ParseDate(dateISO)
	if err != nil {
		return nil, err
	}
	conn := db.GetDb()
	dc, err := common.LoadDayContext(conn, locationId, date)
	if err != nil {
		return nil, err
	}
	if !dc.Open {
		return &types.APIResponseCheck{Available: false, Reason: "location_closed"}, nil
	}
	decision, err := availability.SelectTable(availability.Request{
		Date:     date,
		Time:     clock,
		Guests:   guests,
		Turnover: dc.Location.TurnoverTime,
		Tables:   dc.Location.Tables,
		Bookings: dc.Bookings,
	})
	if err != nil {
		return nil, err
	}
	result := &types.APIResponseCheck{
		Available:    decision.Available,
		TableID:      decision.TableID,
		Alternatives: decision.Alternatives,
		Reason:       string(decision.Reason),
	}
	return result, nil
}
