package repositories

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountingReader defines read operations over the generated ledger
type AccountingReader interface {
	// FindPeriod retrieves the accounting period for a month/year, or
	// apperrors.ErrNotFound if no generation run has created it yet.
	FindPeriod(ctx context.Context, month, year int) (*domain.AccountingPeriod, error)

	// FindPeriodByID retrieves an accounting period by its identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all accounting periods, newest first.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// FindEntryByID retrieves a single journal entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByPeriod retrieves a period's journal entries ordered by
	// entry type then project.
	ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error)

	// ListTrailsByEntry retrieves an entry's audit trails ordered by
	// allocated amount, largest first.
	ListTrailsByEntry(ctx context.Context, entryID string) ([]domain.AuditTrail, error)

	// FindTicketsByIDs retrieves the tickets referenced by audit trails,
	// keyed by Ticket.ID.
	FindTicketsByIDs(ctx context.Context, ids []string) (map[string]domain.Ticket, error)

	// SumCapitalizationByProject returns each project's all-time sum of
	// CAPITALIZATION entry amounts, optionally excluding one period (the one
	// about to be regenerated).
	SumCapitalizationByProject(ctx context.Context, excludePeriodID string) (map[string]decimal.Decimal, error)

	// SumAllocationsByTicket returns the total audit-trail dollars recorded
	// against each ticket, keyed by Ticket.ID.
	SumAllocationsByTicket(ctx context.Context) (map[string]decimal.Decimal, error)

	// CountEntriesByProject returns how many journal entries reference each project.
	CountEntriesByProject(ctx context.Context) (map[string]int, error)
}

// AccountingWriter defines the single write operation on the ledger:
// atomically replacing one period's generated artifacts.
type AccountingWriter interface {
	// ReplacePeriodEntries runs the full delete-and-recreate sequence for
	// one period inside a single database transaction, serialized per
	// period by an advisory lock: find-or-create the period row, delete its
	// existing entries (audit trails cascade), insert the new entries and
	// trails, write the period totals, and recompute accumulated_cost for
	// every project in recostProjectIDs as the all-time sum of that
	// project's capitalization entries. On any error the period's prior
	// state is left intact.
	ReplacePeriodEntries(
		ctx context.Context,
		period domain.AccountingPeriod,
		entries []domain.JournalEntry,
		trails []domain.AuditTrail,
		recostProjectIDs []string,
	) (*domain.AccountingPeriod, error)
}

// AccountingRepositoryFacade combines ledger read and write interfaces
type AccountingRepositoryFacade interface {
	AccountingReader
	AccountingWriter
}
