package repositories

import (
	"context"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
)

// TicketReader defines read operations for ticket data
type TicketReader interface {
	// ListTickets retrieves all tickets, newest first.
	ListTickets(ctx context.Context) ([]domain.Ticket, error)

	// ListTicketsByProject retrieves all tickets belonging to one project.
	ListTicketsByProject(ctx context.Context, projectID string) ([]domain.Ticket, error)

	// ListResolvedTicketsInWindow retrieves every ticket whose resolution
	// date falls inside [from, to].
	ListResolvedTicketsInWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, error)
}

// TicketWriter defines write operations for ticket data
type TicketWriter interface {
	// CreateTicket inserts a synced ticket. Returns apperrors.ErrDuplicate
	// when the tracker key already exists.
	CreateTicket(ctx context.Context, ticket domain.Ticket) error
}

// TicketRepositoryFacade combines all ticket repository interfaces
type TicketRepositoryFacade interface {
	TicketReader
	TicketWriter
}
