package services

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/nocap/captrack_backend/internal/dto"
)

// AllocationSvcFacade is the period cost allocator: it loads one consistent
// snapshot of a period's developers and resolved tickets and splits each
// developer's loaded cost by story-point ratio.
type AllocationSvcFacade interface {
	// Snapshot loads the period's active developers, resolved tickets and
	// fringe default in one pass. Generation and reconciliation both read
	// from it so their arithmetic cannot diverge.
	Snapshot(ctx context.Context, month, year int) (*domain.PeriodSnapshot, error)

	// CalculatePeriodCosts returns each active developer's cost split for
	// the period, excluding developers with no resolved points.
	CalculatePeriodCosts(ctx context.Context, month, year int) ([]domain.PeriodCostResult, error)
}

// GenerationSvcFacade produces a period's complete set of journal entries.
type GenerationSvcFacade interface {
	// GenerateEntries deterministically (re)creates all journal entries,
	// audit trails and totals for the period. Full replace semantics: prior
	// entries for the period are deleted, never patched. Not safe to run
	// concurrently for the same period; the persistence layer serializes
	// runs per period.
	GenerateEntries(ctx context.Context, month, year int, actorID string) (*dto.GenerationTotals, error)
}

// AccountingSvcFacade serves read-side views over the generated ledger.
type AccountingSvcFacade interface {
	// ListPeriods returns all periods with their entries, newest first.
	ListPeriods(ctx context.Context) ([]dto.PeriodResponse, error)

	// EntryAuditDetail returns one entry with its audit trails, a developer
	// rollup for capitalization/expense entries, and a recomputed
	// amortization schedule for amortization entries.
	EntryAuditDetail(ctx context.Context, entryID string) (*dto.EntryAuditResponse, error)

	// ExportPeriodCSV renders a period's full audit trail as CSV. Returns
	// the suggested filename and the file body.
	ExportPeriodCSV(ctx context.Context, month, year int) (string, []byte, error)
}
