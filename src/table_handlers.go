package main

import (
	"errors"
	"net/http"

	"tablebook/src/db"
	"tablebook/src/models"
	"tablebook/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func tableHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/locations/:id/tables", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var tables []models.Table
			err := db.
				Model(&models.Table{}).
				Where("location_id = ?", params.ID).
				Order("id asc").
				Find(&tables).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tables, "count": len(tables)})
		}).
		POST("/locations/:id/tables", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateTableRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			table := models.Table{
				LocationID: params.ID,
				Name:       body.Name,
				Capacity:   body.Capacity,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var location models.Location
				if err := tx.First(&location, params.ID).Error; err != nil {
					return err
				}
				return tx.Create(&table).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": table})
		}).
		PUT("/tables/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateTableRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.Table{}).
				Where(&models.Table{ID: params.ID}).
				Updates(&models.Table{Name: body.Name, Capacity: body.Capacity})
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/tables/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				// A table with live bookings cannot disappear from under them.
				var count int64
				if err := tx.
					Model(&models.Booking{}).
					Where("table_id = ?", params.ID).
					Where("status IN (?)", []types.BookingStatus{
						types.BOOKING_PENDING,
						types.BOOKING_CONFIRMED,
					}).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("table has active bookings")
				}
				return tx.Delete(&models.Table{}, params.ID).Error
			})
			if err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
