package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// operationsHandler handles payroll ingestion and the tracker sync trigger.
type operationsHandler struct {
	payroll portssvc.PayrollSvcFacade
	sync    portssvc.SyncSvcFacade
}

func newOperationsHandler(payroll portssvc.PayrollSvcFacade, sync portssvc.SyncSvcFacade) *operationsHandler {
	return &operationsHandler{payroll: payroll, sync: sync}
}

func registerPayrollRoutes(rg *gin.RouterGroup, payroll portssvc.PayrollSvcFacade) {
	h := newOperationsHandler(payroll, nil)
	rg.GET("/payroll/register", h.payrollRegister)
	rg.POST("/payroll/upload", h.payrollUpload)
}

// registerIntegrationRoutes wires the endpoints that stand in for external
// systems. They sit in their own group so the caller can rate limit them.
func registerIntegrationRoutes(rg *gin.RouterGroup, sync portssvc.SyncSvcFacade) {
	h := newOperationsHandler(nil, sync)
	rg.POST("/integrations/tracker/sync", h.syncTickets)
}

func (h *operationsHandler) payrollRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	register, err := h.payroll.Register(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build payroll register")
		return
	}
	c.JSON(http.StatusOK, register)
}

func (h *operationsHandler) payrollUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PayrollUploadRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind payroll upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "data must be a non-empty array of payroll rows"})
		return
	}

	result, err := h.payroll.Upload(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply payroll upload")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *operationsHandler) syncTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.sync.SyncTickets(c.Request.Context(), actorID(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to sync tickets")
		return
	}
	c.JSON(http.StatusOK, result)
}
