package main

import (
	"bts/src/common"
	"bts/src/types"
	"bts/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func holdHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/holds", func(ctx *gin.Context) {
			accountId := ctx.GetUint("id")
			holds, err := getEngine().ListHolds(accountId)
			if err != nil {
				log.Printf("Error listing holds for account [%d]: %s\n", accountId, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": holds, "count": len(holds)})
		}).
		POST("/holds", func(ctx *gin.Context) {
			var body types.ReserveSeatRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			hold, err := getEngine().ReserveSeat(common.ReserveSeatParams{
				AccountID:  accountId,
				TripID:     body.TripID,
				SeatNumber: body.SeatNumber,
				FromStopID: body.FromStopID,
				ToStopID:   body.ToStopID,
				ExpiresAt:  body.ExpiresAt,
			})
			if err != nil {
				log.Printf("Error reserving seat %s on trip [%d]: %s\n", body.SeatNumber, body.TripID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": hold})
		}).
		PATCH("/holds/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateHoldRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			hold, err := getEngine().UpdateHold(params.ID, accountId, common.HoldPatch{
				TripID:     body.TripID,
				SeatNumber: body.SeatNumber,
				FromStopID: body.FromStopID,
				ToStopID:   body.ToStopID,
				ExpiresAt:  body.ExpiresAt,
			})
			if err != nil {
				log.Printf("Error updating hold [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": hold})
		}).
		DELETE("/holds/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			if err := getEngine().DeleteHold(params.ID, accountId); err != nil {
				log.Printf("Error deleting hold [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
