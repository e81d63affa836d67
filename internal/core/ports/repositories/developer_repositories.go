package repositories

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
)

// DeveloperReader defines read operations for developer data
type DeveloperReader interface {
	// ListDevelopers retrieves all developers, active or not, ordered by name.
	ListDevelopers(ctx context.Context) ([]domain.Developer, error)

	// ListActiveDevelopers retrieves only developers currently on payroll.
	ListActiveDevelopers(ctx context.Context) ([]domain.Developer, error)

	// FindDeveloperByID retrieves a specific developer by their unique identifier.
	FindDeveloperByID(ctx context.Context, developerID string) (*domain.Developer, error)

	// FindDeveloperByEmail retrieves a developer by email, the key payroll uploads match on.
	FindDeveloperByEmail(ctx context.Context, email string) (*domain.Developer, error)
}

// DeveloperWriter defines write operations for developer data
type DeveloperWriter interface {
	// UpdateDeveloper persists changes to a developer's payroll fields and active flag.
	UpdateDeveloper(ctx context.Context, developer domain.Developer) error
}

// DeveloperRepositoryFacade combines all developer repository interfaces
type DeveloperRepositoryFacade interface {
	DeveloperReader
	DeveloperWriter
}
