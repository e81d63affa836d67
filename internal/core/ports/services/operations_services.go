package services

import (
	"context"

	"github.com/nocap/captrack_backend/internal/dto"
)

// PayrollSvcFacade handles payroll ingestion and the register view.
type PayrollSvcFacade interface {
	// Register returns the developer-by-import gross salary matrix.
	Register(ctx context.Context) (*dto.PayrollRegisterResponse, error)

	// Upload applies a payroll batch to the developer roster. Invalid rows
	// and unknown emails are skipped; the result reports applied count.
	Upload(ctx context.Context, req dto.PayrollUploadRequest, actorID string) (*dto.UploadResult, error)
}

// SyncSvcFacade simulates the external tracker sync.
type SyncSvcFacade interface {
	// SyncTickets generates a batch of mock resolved tickets across the
	// existing developers and projects, skipping duplicate tracker keys.
	SyncTickets(ctx context.Context, actorID string) (*dto.UploadResult, error)
}

// AdminSvcFacade serves the admin surface: global config and console users.
type AdminSvcFacade interface {
	// Overview lists all configs and users.
	Overview(ctx context.Context) (*dto.AdminOverviewResponse, error)

	// Update applies either a config value change or a user role change.
	Update(ctx context.Context, req dto.AdminUpdateRequest, actorID string) error
}
