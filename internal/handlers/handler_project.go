package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/middleware"
)

// projectHandler handles the project endpoints.
type projectHandler struct {
	project portssvc.ProjectSvcFacade
}

func newProjectHandler(project portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{project: project}
}

func registerProjectRoutes(rg *gin.RouterGroup, project portssvc.ProjectSvcFacade) {
	h := newProjectHandler(project)
	rg.GET("/projects", h.listProjects)
	rg.GET("/projects/:projectID", h.getProject)
	rg.GET("/projects/:projectID/tickets", h.listProjectTickets)
	rg.PATCH("/projects/:projectID", h.updateProject)
}

func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	projects, err := h.project.ListProjects(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	project, err := h.project.GetProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *projectHandler) listProjectTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tickets, err := h.project.ListProjectTickets(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list project tickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.UpdateProjectRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind project update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := h.project.UpdateProject(c.Request.Context(), c.Param("projectID"), req, actorID(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, project)
}
