package repositories

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// ListProjects retrieves all projects, newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// FindProjectByID retrieves a specific project by its unique identifier.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListAmortizableProjects retrieves projects that are LIVE and have been
	// placed in service (non-null launch date).
	ListAmortizableProjects(ctx context.Context) ([]domain.Project, error)

	// ListCapitalizableProjects retrieves projects flagged capitalizable,
	// ordered by name.
	ListCapitalizableProjects(ctx context.Context) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// UpdateProject persists changes to a project's accounting treatment fields.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
