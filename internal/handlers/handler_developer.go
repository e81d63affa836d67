package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// developerHandler handles the developer roster endpoints.
type developerHandler struct {
	developer portssvc.DeveloperSvcFacade
}

func newDeveloperHandler(developer portssvc.DeveloperSvcFacade) *developerHandler {
	return &developerHandler{developer: developer}
}

func registerDeveloperRoutes(rg *gin.RouterGroup, developer portssvc.DeveloperSvcFacade) {
	h := newDeveloperHandler(developer)
	rg.GET("/developers", h.listDevelopers)
	rg.GET("/developers/:developerID", h.getDeveloper)
	rg.PATCH("/developers/:developerID", h.updateDeveloper)
}

func (h *developerHandler) listDevelopers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	developers, err := h.developer.ListDevelopers(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list developers")
		return
	}
	c.JSON(http.StatusOK, developers)
}

func (h *developerHandler) getDeveloper(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	developer, err := h.developer.GetDeveloper(c.Request.Context(), c.Param("developerID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get developer")
		return
	}
	c.JSON(http.StatusOK, developer)
}

func (h *developerHandler) updateDeveloper(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.UpdateDeveloperRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind developer update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	developer, err := h.developer.UpdateDeveloper(c.Request.Context(), c.Param("developerID"), req, actorID(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update developer")
		return
	}
	c.JSON(http.StatusOK, developer)
}
