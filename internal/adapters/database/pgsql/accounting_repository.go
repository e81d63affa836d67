package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const periodColumns = `period_id, month, year, status, total_capitalized, total_expensed, total_amortization, created_at, created_by, last_updated_at, last_updated_by`
const entryColumns = `entry_id, entry_type, debit_account, credit_account, amount, description, period_id, project_id, created_at, created_by, last_updated_at, last_updated_by`
const trailColumns = `trail_id, journal_entry_id, ticket_ref, ticket_id, developer_name, allocated_amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountingRepository creates a new repository for the generated ledger.
func NewPgxAccountingRepository(pool *pgxpool.Pool) portsrepo.AccountingRepositoryFacade {
	return &PgxAccountingRepository{pool: pool}
}

var _ portsrepo.AccountingRepositoryFacade = (*PgxAccountingRepository)(nil)

func scanPeriod(row pgx.Row) (domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.Month,
		&p.Year,
		&p.Status,
		&p.TotalCapitalized,
		&p.TotalExpensed,
		&p.TotalAmortization,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.EntryType,
		&e.DebitAccount,
		&e.CreditAccount,
		&e.Amount,
		&e.Description,
		&e.PeriodID,
		&e.ProjectID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// FindPeriod retrieves the period for a month/year.
func (r *PgxAccountingRepository) FindPeriod(ctx context.Context, month, year int) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE month = $1 AND year = $2;`
	p, err := scanPeriod(r.pool.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %d/%d: %w", month, year, err)
	}
	return &p, nil
}

// FindPeriodByID retrieves a period by its identifier.
func (r *PgxAccountingRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`
	p, err := scanPeriod(r.pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return &p, nil
}

// ListPeriods retrieves all periods, newest first.
func (r *PgxAccountingRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods ORDER BY year DESC, month DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// FindEntryByID retrieves a single journal entry.
func (r *PgxAccountingRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	e, err := scanEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return &e, nil
}

// ListEntriesByPeriod retrieves a period's entries ordered by entry type
// then project, so the ledger reads in stable document order.
func (r *PgxAccountingRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE period_id = $1 ORDER BY entry_type, project_id;`
	rows, err := r.pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for period %s: %w", periodID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

// ListTrailsByEntry retrieves an entry's audit trails, largest amount first.
func (r *PgxAccountingRepository) ListTrailsByEntry(ctx context.Context, entryID string) ([]domain.AuditTrail, error) {
	query := `SELECT ` + trailColumns + ` FROM audit_trails WHERE journal_entry_id = $1 ORDER BY allocated_amount DESC, ticket_id;`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trails for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	trails := []domain.AuditTrail{}
	for rows.Next() {
		var t domain.AuditTrail
		if err := rows.Scan(
			&t.TrailID,
			&t.JournalEntryID,
			&t.TicketRef,
			&t.TicketID,
			&t.DeveloperName,
			&t.AllocatedAmount,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit trail row: %w", err)
		}
		trails = append(trails, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit trail rows: %w", err)
	}
	return trails, nil
}

// FindTicketsByIDs retrieves the tickets referenced by audit trails, keyed by ID.
func (r *PgxAccountingRepository) FindTicketsByIDs(ctx context.Context, ids []string) (map[string]domain.Ticket, error) {
	tickets := make(map[string]domain.Ticket, len(ids))
	if len(ids) == 0 {
		return tickets, nil
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		tickets[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}
	return tickets, nil
}

// SumCapitalizationByProject returns each project's all-time capitalization
// total, optionally excluding one period's entries.
func (r *PgxAccountingRepository) SumCapitalizationByProject(ctx context.Context, excludePeriodID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT project_id, COALESCE(SUM(amount), 0)
		FROM journal_entries
		WHERE entry_type = 'CAPITALIZATION' AND ($1 = '' OR period_id <> $1)
		GROUP BY project_id;
	`
	return r.sumByKey(ctx, query, excludePeriodID)
}

// SumAllocationsByTicket returns the total audit-trail dollars per ticket.
func (r *PgxAccountingRepository) SumAllocationsByTicket(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT ticket_ref, COALESCE(SUM(allocated_amount), 0)
		FROM audit_trails
		GROUP BY ticket_ref;
	`
	return r.sumByKey(ctx, query)
}

func (r *PgxAccountingRepository) sumByKey(ctx context.Context, query string, args ...any) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var key string
		var sum decimal.Decimal
		if err := rows.Scan(&key, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan ledger sum row: %w", err)
		}
		sums[key] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger sum rows: %w", err)
	}
	return sums, nil
}

// CountEntriesByProject returns how many journal entries reference each project.
func (r *PgxAccountingRepository) CountEntriesByProject(ctx context.Context) (map[string]int, error) {
	query := `SELECT project_id, COUNT(*) FROM journal_entries GROUP BY project_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var projectID string
		var n int
		if err := rows.Scan(&projectID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan entry count row: %w", err)
		}
		counts[projectID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry count rows: %w", err)
	}
	return counts, nil
}

// ReplacePeriodEntries runs the full delete-and-recreate sequence for one
// period in a single transaction. An advisory lock on (year, month) makes
// concurrent runs for the same period queue rather than interleave; the lock
// releases automatically at commit or rollback.
func (r *PgxAccountingRepository) ReplacePeriodEntries(
	ctx context.Context,
	period domain.AccountingPeriod,
	entries []domain.JournalEntry,
	trails []domain.AuditTrail,
	recostProjectIDs []string,
) (*domain.AccountingPeriod, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2);`, int32(period.Year), int32(period.Month)); err != nil {
		return nil, fmt.Errorf("failed to acquire period lock for %d/%d: %w", period.Month, period.Year, err)
	}

	// Find-or-create the period row. On conflict the existing period_id and
	// created fields survive; only the totals and update stamps change.
	upsert := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (month, year) DO UPDATE
		SET total_capitalized = EXCLUDED.total_capitalized,
			total_expensed = EXCLUDED.total_expensed,
			total_amortization = EXCLUDED.total_amortization,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + periodColumns + `;
	`
	persisted, err := scanPeriod(tx.QueryRow(ctx, upsert,
		period.PeriodID,
		period.Month,
		period.Year,
		period.Status,
		period.TotalCapitalized,
		period.TotalExpensed,
		period.TotalAmortization,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert period %d/%d: %w", period.Month, period.Year, err)
	}

	// Full replace: drop the period's prior entries. Audit trails go with
	// them via ON DELETE CASCADE.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE period_id = $1;`, persisted.PeriodID); err != nil {
		return nil, fmt.Errorf("failed to delete prior entries for period %s: %w", persisted.PeriodID, err)
	}

	batch := &pgx.Batch{}
	entryInsert := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, e := range entries {
		batch.Queue(entryInsert,
			e.EntryID,
			e.EntryType,
			e.DebitAccount,
			e.CreditAccount,
			e.Amount,
			e.Description,
			persisted.PeriodID,
			e.ProjectID,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}
	trailInsert := `
		INSERT INTO audit_trails (` + trailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, t := range trails {
		batch.Queue(trailInsert,
			t.TrailID,
			t.JournalEntryID,
			t.TicketRef,
			t.TicketID,
			t.DeveloperName,
			t.AllocatedAmount,
			t.CreatedAt,
			t.CreatedBy,
			t.LastUpdatedAt,
			t.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert entries for period %s: %w", persisted.PeriodID, err)
	}

	// Re-derive accumulated cost from the ledger for every touched project.
	if len(recostProjectIDs) > 0 {
		recost := `
			UPDATE projects
			SET accumulated_cost = COALESCE((
				SELECT SUM(amount) FROM journal_entries
				WHERE project_id = projects.project_id AND entry_type = 'CAPITALIZATION'
			), 0)
			WHERE project_id = ANY($1);
		`
		if _, err := tx.Exec(ctx, recost, recostProjectIDs); err != nil {
			return nil, fmt.Errorf("failed to recompute accumulated cost: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit period %s: %w", persisted.PeriodID, err)
	}
	return &persisted, nil
}
