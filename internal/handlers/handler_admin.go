package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// adminHandler handles the admin surface endpoints.
type adminHandler struct {
	admin portssvc.AdminSvcFacade
}

func registerAdminRoutes(rg *gin.RouterGroup, admin portssvc.AdminSvcFacade) {
	h := &adminHandler{admin: admin}
	rg.GET("/admin", h.overview)
	rg.POST("/admin/update", h.update)
}

func (h *adminHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load admin overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *adminHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.AdminUpdateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind admin update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of: config, user_role"})
		return
	}

	if err := h.admin.Update(c.Request.Context(), req, actorID(c)); err != nil {
		respondServiceError(c, logger, err, "Failed to apply admin update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
