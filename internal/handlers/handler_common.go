package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nocap/captrack_backend/internal/apperrors"
)

// systemActorID stamps writes when no actor header is present. Authentication
// lives at the gateway in front of this service; the forwarded actor header
// is trusted as-is.
const systemActorID = "system"

// actorHeader is set by the gateway after it authenticates the caller.
const actorHeader = "X-Actor-ID"

func actorID(c *gin.Context) string {
	if id := c.GetHeader(actorHeader); id != "" {
		return id
	}
	return systemActorID
}

// respondServiceError maps service errors onto HTTP statuses. Unrecognized
// errors become opaque 500s so internals never leak to clients.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDataIntegrity):
		logger.Error("Data integrity failure", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// periodQuery parses the month/year query parameters shared by the period
// scoped endpoints.
func periodQuery(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return 0, 0, false
	}
	return month, year, true
}
