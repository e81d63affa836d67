package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// ticketHandler handles the ticket list endpoint.
type ticketHandler struct {
	ticket portssvc.TicketSvcFacade
}

func registerTicketRoutes(rg *gin.RouterGroup, ticket portssvc.TicketSvcFacade) {
	h := &ticketHandler{ticket: ticket}
	rg.GET("/tickets", h.listTickets)
}

func (h *ticketHandler) listTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tickets, err := h.ticket.ListTickets(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}
