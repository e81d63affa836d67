package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// accountingHandler handles entry generation and ledger read endpoints.
type accountingHandler struct {
	generation portssvc.GenerationSvcFacade
	accounting portssvc.AccountingSvcFacade
}

func newAccountingHandler(generation portssvc.GenerationSvcFacade, accounting portssvc.AccountingSvcFacade) *accountingHandler {
	return &accountingHandler{generation: generation, accounting: accounting}
}

func registerAccountingRoutes(rg *gin.RouterGroup, generation portssvc.GenerationSvcFacade, accounting portssvc.AccountingSvcFacade) {
	h := newAccountingHandler(generation, accounting)
	rg.POST("/journal-entries/generate", h.generateEntries)
	rg.GET("/periods", h.listPeriods)
	rg.GET("/periods/export", h.exportPeriodCSV)
	rg.GET("/journal-entries/:entryID/audit", h.entryAudit)
}

func (h *accountingHandler) generateEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.GenerateEntriesRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind generation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "month (1-12) and year are required"})
		return
	}

	totals, err := h.generation.GenerateEntries(c.Request.Context(), req.Month, req.Year, actorID(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate journal entries")
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *accountingHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.accounting.ListPeriods(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, periods)
}

func (h *accountingHandler) entryAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	detail, err := h.accounting.EntryAuditDetail(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load entry audit detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *accountingHandler) exportPeriodCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	month, year, ok := periodQuery(c)
	if !ok {
		return
	}
	filename, body, err := h.accounting.ExportPeriodCSV(c.Request.Context(), month, year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export period")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", body)
}
