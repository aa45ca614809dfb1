package main

import (
	"errors"
	"log"
	"net/http"

	"tablebook/src/db"
	"tablebook/src/lib"
	"tablebook/src/models"
	"tablebook/src/types"
	"tablebook/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func locationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/locations", func(ctx *gin.Context) {
			db := db.GetDb()
			var locations []models.Location
			err := db.
				Model(&models.Location{}).
				Preload("Tables").
				Find(&locations).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": locations, "count": len(locations)})
		}).
		GET("/locations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var location models.Location
			err := db.
				Model(&models.Location{}).
				Preload("Tables").
				Preload("OpeningHours").
				Preload("SpecialClosures").
				First(&location, params.ID).
				Error
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": location})
		}).
		POST("/locations", func(ctx *gin.Context) {
			var body types.CreateLocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			turnover := body.TurnoverTime
			if turnover == 0 {
				turnover = defaultTurnover
			}
			tenantId, _ := uuid.Parse(ctx.GetString("tenant_id"))
			location := models.Location{
				Name:         body.Name,
				Slug:         utils.MakeSlug(body.Name),
				Timezone:     body.Timezone,
				TurnoverTime: turnover,
				TenantID:     &tenantId,
			}
			db := db.GetDb()
			if err := db.Create(&location).Error; err != nil {
				log.Printf("Could not create location: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": location})
		}).
		PUT("/locations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateLocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var location models.Location
				if err := tx.First(&location, params.ID).Error; err != nil {
					return err
				}
				updates := models.Location{
					Name:         body.Name,
					Timezone:     body.Timezone,
					TurnoverTime: body.TurnoverTime,
				}
				if body.Name != "" {
					updates.Slug = utils.MakeSlug(body.Name)
				}
				return tx.
					Model(&models.Location{}).
					Where(&models.Location{ID: params.ID}).
					Updates(&updates).
					Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateMonthStatus(params.ID)
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/locations/:id/hours", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SetOpeningHoursRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var location models.Location
				if err := tx.First(&location, params.ID).Error; err != nil {
					return err
				}
				// Replace the whole weekly schedule in one shot.
				if err := tx.
					Where("location_id = ?", params.ID).
					Delete(&models.OpeningHour{}).
					Error; err != nil {
					return err
				}
				for _, h := range body.Hours {
					entry := models.OpeningHour{
						LocationID: params.ID,
						DayOfWeek:  *h.DayOfWeek,
						OpensAt:    h.OpensAt,
						ClosesAt:   h.ClosesAt,
					}
					if err := tx.Create(&entry).Error; err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateMonthStatus(params.ID)
			ctx.Status(http.StatusNoContent)
		}).
		POST("/locations/:id/closures", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateClosureRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			closure := models.SpecialClosure{
				LocationID: params.ID,
				Date:       body.Date,
				IsClosed:   body.IsClosed,
				OpensAt:    body.OpensAt,
				ClosesAt:   body.ClosesAt,
				Note:       body.Note,
			}
			db := db.GetDb()
			// One record per (location, date): a second write replaces the
			// first instead of accumulating conflicting overrides.
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where("location_id = ? AND date = ?", params.ID, body.Date).
					Delete(&models.SpecialClosure{}).
					Error; err != nil {
					return err
				}
				return tx.Create(&closure).Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateMonthStatus(params.ID)
			ctx.JSON(http.StatusCreated, gin.H{"data": closure})
		}).
		DELETE("/locations/:id/closures/:closureId", func(ctx *gin.Context) {
			var params struct {
				ID        uint `uri:"id" binding:"required"`
				ClosureID uint `uri:"closureId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			result := db.
				Where("location_id = ?", params.ID).
				Delete(&models.SpecialClosure{}, params.ClosureID)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			lib.InvalidateMonthStatus(params.ID)
			ctx.Status(http.StatusNoContent)
		})
	return g
}
