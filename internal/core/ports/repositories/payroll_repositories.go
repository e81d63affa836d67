package repositories

import (
	"context"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayrollReader defines read operations for externally recorded payroll
// data. Payroll imports are reference data for reconciliation; this service
// never creates them.
type PayrollReader interface {
	// ListImports retrieves all payroll imports ordered by pay date.
	ListImports(ctx context.Context) ([]domain.PayrollImport, error)

	// ListEntriesByImports retrieves the per-developer rows of the given
	// imports, grouped by import ID.
	ListEntriesByImports(ctx context.Context, importIDs []string) (map[string][]domain.PayrollEntry, error)

	// SumGrossByDeveloper totals recorded gross salary per developer over
	// pay dates in [from, to]. An empty result is the expected soft case
	// when no payroll was imported for the window.
	SumGrossByDeveloper(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
}

// PayrollWriter defines write operations for payroll batches.
type PayrollWriter interface {
	// CreateImport inserts an import header and its per-developer rows in
	// one transaction.
	CreateImport(ctx context.Context, imp domain.PayrollImport, entries []domain.PayrollEntry) error
}

// PayrollRepositoryFacade combines payroll repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}
