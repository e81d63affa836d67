package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
)

const ticketColumns = `id, ticket_id, epic_key, issue_type, summary, story_points, resolution_date, fix_version, assignee_id, project_id, created_at, created_by, last_updated_at, last_updated_by`

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

type PgxTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTicketRepository creates a new repository for ticket data.
func NewPgxTicketRepository(pool *pgxpool.Pool) portsrepo.TicketRepositoryFacade {
	return &PgxTicketRepository{pool: pool}
}

var _ portsrepo.TicketRepositoryFacade = (*PgxTicketRepository)(nil)

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.TicketID,
		&t.EpicKey,
		&t.IssueType,
		&t.Summary,
		&t.StoryPoints,
		&t.ResolutionDate,
		&t.FixVersion,
		&t.AssigneeID,
		&t.ProjectID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func (r *PgxTicketRepository) listTickets(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}
	return tickets, nil
}

// ListTickets retrieves all tickets, newest resolution first.
func (r *PgxTicketRepository) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY resolution_date DESC NULLS LAST, ticket_id;`
	return r.listTickets(ctx, query)
}

// ListTicketsByProject retrieves all tickets belonging to one project.
func (r *PgxTicketRepository) ListTicketsByProject(ctx context.Context, projectID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE project_id = $1 ORDER BY resolution_date DESC NULLS LAST, ticket_id;`
	return r.listTickets(ctx, query, projectID)
}

// ListResolvedTicketsInWindow retrieves tickets resolved inside [from, to].
func (r *PgxTicketRepository) ListResolvedTicketsInWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE resolution_date BETWEEN $1 AND $2 ORDER BY ticket_id;`
	return r.listTickets(ctx, query, from, to)
}

// CreateTicket inserts a synced ticket. Returns apperrors.ErrDuplicate when
// the tracker key already exists.
func (r *PgxTicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.TicketID,
		ticket.EpicKey,
		ticket.IssueType,
		ticket.Summary,
		ticket.StoryPoints,
		ticket.ResolutionDate,
		ticket.FixVersion,
		ticket.AssigneeID,
		ticket.ProjectID,
		ticket.CreatedAt,
		ticket.CreatedBy,
		ticket.LastUpdatedAt,
		ticket.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: ticket %s already exists", apperrors.ErrDuplicate, ticket.TicketID)
		}
		return fmt.Errorf("failed to insert ticket %s: %w", ticket.TicketID, err)
	}
	return nil
}
