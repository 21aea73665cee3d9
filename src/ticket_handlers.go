package main

import (
	"bts/src/common"
	"bts/src/middlewares"
	"bts/src/types"
	"bts/src/utils"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tickets", func(ctx *gin.Context) {
			accountId := ctx.GetUint("id")
			tickets, err := getEngine().ListTickets(accountId)
			if err != nil {
				log.Printf("Error listing tickets for account [%d]: %s\n", accountId, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets, "count": len(tickets)})
		}).
		POST("/tickets", func(ctx *gin.Context) {
			var body types.CreateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			ticket, err := getEngine().CreateTicket(common.CreateTicketParams{
				AccountID:       accountId,
				TripID:          body.TripID,
				SeatNumber:      body.SeatNumber,
				FromStopID:      body.FromStopID,
				ToStopID:        body.ToStopID,
				Category:        types.PassengerCategory(body.PassengerCategory),
				PaymentMethod:   body.PaymentMethod,
				BaggageWeightKg: body.BaggageWeightKg,
			})
			if err != nil {
				log.Printf("Error booking seat %s on trip [%d]: %s\n", body.SeatNumber, body.TripID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": ticket})
		}).
		PUT("/tickets/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			ticket, err := getEngine().CancelTicket(params.ID, accountId)
			if err != nil {
				log.Printf("Error cancelling ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		PUT("/tickets/:id/pay", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.PayTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			ticket, err := getEngine().MarkTicketPaid(params.ID, accountId, body.PaymentReference)
			if err != nil {
				log.Printf("Error settling ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		PUT("/tickets/pay", func(ctx *gin.Context) {
			var body types.PayTicketsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			tickets, err := getEngine().MarkTicketsPaid(body.TicketIDs, accountId, body.PaymentReference)
			if err != nil {
				log.Printf("Error settling tickets %v: %s\n", body.TicketIDs, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets, "count": len(tickets)})
		}).
		POST("/tickets/checkin", func(ctx *gin.Context) {
			var body types.CheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := getEngine().CheckInTicket(body.QRCode)
			if err != nil {
				log.Printf("Error on check-in for code %q: %s\n", body.QRCode, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		GET("/tickets/:id/qrcode", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accountId := ctx.GetUint("id")
			tickets, err := getEngine().ListTickets(accountId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			for _, ticket := range tickets {
				if ticket.ID != params.ID {
					continue
				}
				if ticket.QRCode == nil {
					ctx.JSON(http.StatusPreconditionFailed, gin.H{"error": "ticket is not paid yet"})
					return
				}
				filepath, err := utils.SaveQRImage(fmt.Sprintf("ticket-%d", ticket.ID), *ticket.QRCode)
				if err != nil {
					log.Printf("Could not render QR for ticket [%d]: %s\n", ticket.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				ctx.FileAttachment(filepath, "ticket.jpeg")
				return
			}
			ctx.Status(http.StatusNotFound)
		})
	return g
}

// dispatcher-facing approval queue
func approvalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	queue := g.Group("")
	queue.Use(middlewares.RequireRole(types.ROLE_DISPATCHER, types.ROLE_ADMIN))
	queue.
		GET("/tickets/pending", func(ctx *gin.Context) {
			tickets, err := getEngine().ListPendingTickets()
			if err != nil {
				log.Printf("Error listing pending tickets: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets, "count": len(tickets)})
		}).
		PUT("/tickets/:id/approve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := getEngine().ApproveTicket(params.ID)
			if err != nil {
				log.Printf("Error approving ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		PUT("/tickets/:id/reject", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticket, err := getEngine().RejectPendingTicket(params.ID)
			if err != nil {
				log.Printf("Error rejecting ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		})
	return queue
}
