package repositories

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
)

// UserReader defines read operations for console users
type UserReader interface {
	// ListUsers retrieves all console users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for console users
type UserWriter interface {
	// UpdateUserRole changes a user's admin-surface role.
	UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string) error
}

// UserRepositoryFacade combines user repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
