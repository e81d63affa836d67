package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxPayrollRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPayrollRepository creates a new repository for payroll import data.
func NewPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{pool: pool}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

// ListImports retrieves all payroll imports ordered by pay date.
func (r *PgxPayrollRepository) ListImports(ctx context.Context) ([]domain.PayrollImport, error) {
	query := `
		SELECT import_id, label, pay_date, year, created_at, created_by, last_updated_at, last_updated_by
		FROM payroll_imports
		ORDER BY pay_date;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll imports: %w", err)
	}
	defer rows.Close()

	imports := []domain.PayrollImport{}
	for rows.Next() {
		var imp domain.PayrollImport
		if err := rows.Scan(
			&imp.ImportID,
			&imp.Label,
			&imp.PayDate,
			&imp.Year,
			&imp.CreatedAt,
			&imp.CreatedBy,
			&imp.LastUpdatedAt,
			&imp.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll import row: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll import rows: %w", err)
	}
	return imports, nil
}

// ListEntriesByImports retrieves the per-developer rows of the given imports,
// grouped by import ID.
func (r *PgxPayrollRepository) ListEntriesByImports(ctx context.Context, importIDs []string) (map[string][]domain.PayrollEntry, error) {
	entries := make(map[string][]domain.PayrollEntry, len(importIDs))
	if len(importIDs) == 0 {
		return entries, nil
	}
	query := `
		SELECT entry_id, import_id, developer_id, gross_salary, created_at, created_by, last_updated_at, last_updated_by
		FROM payroll_entries
		WHERE import_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, importIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.PayrollEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.ImportID,
			&e.DeveloperID,
			&e.GrossSalary,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry row: %w", err)
		}
		entries[e.ImportID] = append(entries[e.ImportID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll entry rows: %w", err)
	}
	return entries, nil
}

// SumGrossByDeveloper totals recorded gross salary per developer over pay
// dates in [from, to].
func (r *PgxPayrollRepository) SumGrossByDeveloper(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT e.developer_id, COALESCE(SUM(e.gross_salary), 0)
		FROM payroll_entries e
		JOIN payroll_imports i ON i.import_id = e.import_id
		WHERE i.pay_date BETWEEN $1 AND $2
		GROUP BY e.developer_id;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var developerID string
		var gross decimal.Decimal
		if err := rows.Scan(&developerID, &gross); err != nil {
			return nil, fmt.Errorf("failed to scan payroll sum row: %w", err)
		}
		sums[developerID] = gross
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll sum rows: %w", err)
	}
	return sums, nil
}

// CreateImport inserts an import header and its rows in one transaction.
func (r *PgxPayrollRepository) CreateImport(ctx context.Context, imp domain.PayrollImport, entries []domain.PayrollEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	importQuery := `
		INSERT INTO payroll_imports (import_id, label, pay_date, year, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, importQuery,
		imp.ImportID,
		imp.Label,
		imp.PayDate,
		imp.Year,
		imp.CreatedAt,
		imp.CreatedBy,
		imp.LastUpdatedAt,
		imp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payroll import %s: %w", imp.ImportID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO payroll_entries (entry_id, import_id, developer_id, gross_salary, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, e := range entries {
		batch.Queue(entryQuery,
			e.EntryID,
			e.ImportID,
			e.DeveloperID,
			e.GrossSalary,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert payroll entries for import %s: %w", imp.ImportID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payroll import %s: %w", imp.ImportID, err)
	}
	return nil
}
