package services

import (
	"context"
	"fmt"

	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ticketService serves the resolved-work ticket list.
type ticketService struct {
	BaseService
	ticketRepo     portsrepo.TicketReader
	developerRepo  portsrepo.DeveloperReader
	projectRepo    portsrepo.ProjectReader
	accountingRepo portsrepo.AccountingReader
}

// NewTicketService creates the ticket list service.
func NewTicketService(
	ticketRepo portsrepo.TicketReader,
	developerRepo portsrepo.DeveloperReader,
	projectRepo portsrepo.ProjectReader,
	accountingRepo portsrepo.AccountingReader,
) portssvc.TicketSvcFacade {
	return &ticketService{
		ticketRepo:     ticketRepo,
		developerRepo:  developerRepo,
		projectRepo:    projectRepo,
		accountingRepo: accountingRepo,
	}
}

var _ portssvc.TicketSvcFacade = (*ticketService)(nil)

// ListTickets returns all tickets joined with assignee, project and the total
// ledger dollars already allocated against each ticket.
func (s *ticketService) ListTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	tickets, err := s.ticketRepo.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	devs, err := s.developerRepo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	allocByTicket, err := s.accountingRepo.SumAllocationsByTicket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ticket allocations: %w", err)
	}

	devsByID := make(map[string]domain.Developer, len(devs))
	for _, d := range devs {
		devsByID[d.DeveloperID] = d
	}
	projectsByID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ProjectID] = p
	}
	return buildTicketResponses(tickets, devsByID, projectsByID, allocByTicket), nil
}

// buildTicketResponses joins tickets with their assignee and project context.
// Unknown references render as empty refs rather than failing the list; the
// generation path is where dangling references are treated as fatal.
func buildTicketResponses(
	tickets []domain.Ticket,
	devsByID map[string]domain.Developer,
	projectsByID map[string]domain.Project,
	allocByTicket map[string]decimal.Decimal,
) []dto.TicketResponse {
	out := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp := dto.TicketResponse{
			ID:             t.ID,
			TicketID:       t.TicketID,
			EpicKey:        t.EpicKey,
			IssueType:      string(t.IssueType),
			Summary:        t.Summary,
			StoryPoints:    t.StoryPoints,
			ResolutionDate: t.ResolutionDate,
			FixVersion:     t.FixVersion,
			AllocatedCost:  allocByTicket[t.ID],
		}
		if d, ok := devsByID[t.AssigneeID]; ok {
			resp.Assignee = dto.AssigneeRef{
				DeveloperID: d.DeveloperID,
				Name:        d.Name,
				Role:        string(d.Role),
				IsActive:    d.IsActive,
			}
		}
		if p, ok := projectsByID[t.ProjectID]; ok {
			resp.Project = dto.TicketProjectRef{
				ProjectID:       p.ProjectID,
				Name:            p.Name,
				EpicKey:         p.EpicKey,
				Status:          string(p.Status),
				IsCapitalizable: p.IsCapitalizable,
			}
		}
		out = append(out, resp)
	}
	return out
}
