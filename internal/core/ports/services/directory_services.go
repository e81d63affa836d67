package services

import (
	"context"

	"github.com/nocap/captrack_backend/internal/dto"
)

// DeveloperSvcFacade manages the developer roster.
type DeveloperSvcFacade interface {
	// ListDevelopers returns all developers with derived allocation stats.
	ListDevelopers(ctx context.Context) ([]dto.DeveloperResponse, error)

	// GetDeveloper returns one developer with derived stats.
	GetDeveloper(ctx context.Context, developerID string) (*dto.DeveloperResponse, error)

	// UpdateDeveloper applies admin edits to payroll fields / active flag.
	UpdateDeveloper(ctx context.Context, developerID string, req dto.UpdateDeveloperRequest, actorID string) (*dto.DeveloperResponse, error)
}

// ProjectSvcFacade manages projects and their accounting treatment.
type ProjectSvcFacade interface {
	// ListProjects returns all projects with derived stats, newest first.
	ListProjects(ctx context.Context) ([]dto.ProjectResponse, error)

	// GetProject returns one project with derived stats.
	GetProject(ctx context.Context, projectID string) (*dto.ProjectResponse, error)

	// ListProjectTickets returns all tickets belonging to one project.
	ListProjectTickets(ctx context.Context, projectID string) ([]dto.TicketResponse, error)

	// UpdateProject applies admin edits to a project's treatment fields.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, actorID string) (*dto.ProjectResponse, error)
}

// TicketSvcFacade serves the ticket list.
type TicketSvcFacade interface {
	// ListTickets returns all tickets with assignee/project context and
	// ledger allocation totals, newest first.
	ListTickets(ctx context.Context) ([]dto.TicketResponse, error)
}
