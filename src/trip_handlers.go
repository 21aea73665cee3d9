package main

import (
	"bts/src/db"
	"bts/src/models"
	"bts/src/types"
	"bts/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func tripHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/trips", func(ctx *gin.Context) {
			db := db.GetDb()
			var trips []models.Trip
			if err := db.
				Model(&models.Trip{}).
				Preload("Route").
				Preload("Bus").
				Where("departure_time > ?", time.Now()).
				Order("departure_time asc").
				Find(&trips).
				Error; err != nil {
				log.Printf("Error listing trips: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": trips, "count": len(trips)})
		}).
		GET("/trips/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var trip models.Trip
			if err := db.
				Preload("Route").
				Preload("Route.Stops").
				Preload("Bus").
				Preload("Bus.Seats").
				Where(&models.Trip{ID: params.ID}).
				First(&trip).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": trip})
		}).
		GET("/trips/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.AvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			available, reason, err := getEngine().IsSeatAvailable(params.ID, query.Seat, query.FromStopID, query.ToStopID)
			if err != nil {
				log.Printf("Error checking availability for trip [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			body := gin.H{"available": available}
			if reason != "" {
				body["reason"] = reason
			}
			ctx.JSON(http.StatusOK, body)
		}).
		GET("/trips/:id/seats", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query struct {
				FromStopID *uint `form:"from_stop"`
				ToStopID   *uint `form:"to_stop"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			seats, err := getEngine().SeatAvailability(params.ID, query.FromStopID, query.ToStopID)
			if err != nil {
				log.Printf("Error building seat map for trip [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": seats, "count": len(seats)})
		})
	return g
}
