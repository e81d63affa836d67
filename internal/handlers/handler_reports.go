package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// reportsHandler handles the reconciliation and asset report endpoints.
type reportsHandler struct {
	reporting portssvc.ReportingSvcFacade
}

func newReportsHandler(reporting portssvc.ReportingSvcFacade) *reportsHandler {
	return &reportsHandler{reporting: reporting}
}

func registerReportRoutes(rg *gin.RouterGroup, reporting portssvc.ReportingSvcFacade) {
	h := newReportsHandler(reporting)
	rg.GET("/reports/payroll-tieout", h.payrollTieOut)
	rg.GET("/reports/asset-value", h.assetValue)
	rg.GET("/reports/ytd-amortization", h.ytdAmortization)
	rg.GET("/dashboard", h.dashboard)
}

func (h *reportsHandler) payrollTieOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	month, year, ok := periodQuery(c)
	if !ok {
		return
	}
	report, err := h.reporting.PayrollTieOut(c.Request.Context(), month, year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build payroll tie-out")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportsHandler) assetValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reporting.AssetValueReport(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build asset value report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportsHandler) ytdAmortization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reporting.YTDAmortizationReport(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build YTD amortization report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportsHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := h.reporting.Dashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, payload)
}
