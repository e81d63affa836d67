package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
)

// launchDateLayout is the accepted wire form for launch date edits.
const launchDateLayout = "2006-01-02"

// projectService manages projects and their accounting treatment fields.
type projectService struct {
	BaseService
	projectRepo    portsrepo.ProjectRepositoryFacade
	developerRepo  portsrepo.DeveloperReader
	ticketRepo     portsrepo.TicketReader
	accountingRepo portsrepo.AccountingReader
}

// NewProjectService creates the project service.
func NewProjectService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	developerRepo portsrepo.DeveloperReader,
	ticketRepo portsrepo.TicketReader,
	accountingRepo portsrepo.AccountingReader,
) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:    projectRepo,
		developerRepo:  developerRepo,
		ticketRepo:     ticketRepo,
		accountingRepo: accountingRepo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// projectStats holds the per-project ticket and ledger tallies.
type projectStats struct {
	ticketCount int
	storyPoints int
	bugPoints   int
	entryCount  int
}

// ListProjects returns every project with ticket and ledger stats attached.
func (s *projectService) ListProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	stats, err := s.projectStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p, stats[p.ProjectID]))
	}
	return out, nil
}

// GetProject returns one project with stats.
func (s *projectService) GetProject(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats, err := s.projectStats(ctx)
	if err != nil {
		return nil, err
	}
	resp := projectResponse(*project, stats[projectID])
	return &resp, nil
}

// ListProjectTickets returns one project's tickets with full context.
func (s *projectService) ListProjectTickets(ctx context.Context, projectID string) ([]dto.TicketResponse, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.ListTicketsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for project %s: %w", projectID, err)
	}
	return s.ticketResponses(ctx, tickets, map[string]domain.Project{projectID: *project})
}

// UpdateProject applies treatment edits: status, capitalizability with an
// optional override reason, starting balances, launch date and useful life.
// An empty launch date string takes the asset out of service.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, actorID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.IsCapitalizable != nil && *req.IsCapitalizable != project.IsCapitalizable {
		project.IsCapitalizable = *req.IsCapitalizable
		if req.OverrideReason == nil || *req.OverrideReason == "" {
			s.LogWarn(ctx, "Capitalizability changed without an override reason",
				slog.String("projectID", projectID), slog.String("actor", actorID))
		}
	}
	if req.OverrideReason != nil {
		project.OverrideReason = *req.OverrideReason
	}
	if req.StartingBalance != nil {
		if req.StartingBalance.IsNegative() {
			return nil, fmt.Errorf("%w: starting balance cannot be negative", apperrors.ErrValidation)
		}
		project.StartingBalance = *req.StartingBalance
	}
	if req.StartingAmortization != nil {
		if req.StartingAmortization.IsNegative() {
			return nil, fmt.Errorf("%w: starting amortization cannot be negative", apperrors.ErrValidation)
		}
		project.StartingAmortization = *req.StartingAmortization
	}
	if req.LaunchDate != nil {
		if *req.LaunchDate == "" {
			project.LaunchDate = nil
		} else {
			launch, err := time.ParseInLocation(launchDateLayout, *req.LaunchDate, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("%w: launch date must be YYYY-MM-DD, got %q", apperrors.ErrValidation, *req.LaunchDate)
			}
			project.LaunchDate = &launch
		}
	}
	if req.AmortizationMonths != nil {
		if *req.AmortizationMonths <= 0 {
			return nil, fmt.Errorf("%w: amortization months must be positive", apperrors.ErrValidation)
		}
		project.AmortizationMonths = *req.AmortizationMonths
	}
	project.LastUpdatedAt = time.Now().UTC()
	project.LastUpdatedBy = actorID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	s.LogInfo(ctx, "Project updated", slog.String("projectID", projectID), slog.String("actor", actorID))

	return s.GetProject(ctx, projectID)
}

// projectStats tallies ticket counts and points from the full ticket list and
// joins the per-project entry counts from the ledger.
func (s *projectService) projectStats(ctx context.Context) (map[string]projectStats, error) {
	tickets, err := s.ticketRepo.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	entryCounts, err := s.accountingRepo.CountEntriesByProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	stats := make(map[string]projectStats)
	for _, t := range tickets {
		st := stats[t.ProjectID]
		st.ticketCount++
		switch t.IssueType {
		case domain.IssueStory:
			st.storyPoints += t.StoryPoints
		case domain.IssueBug:
			st.bugPoints += t.StoryPoints
		}
		stats[t.ProjectID] = st
	}
	for projectID, n := range entryCounts {
		st := stats[projectID]
		st.entryCount = n
		stats[projectID] = st
	}
	return stats, nil
}

func (s *projectService) ticketResponses(ctx context.Context, tickets []domain.Ticket, projects map[string]domain.Project) ([]dto.TicketResponse, error) {
	devs, err := s.developerRepo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}
	devsByID := make(map[string]domain.Developer, len(devs))
	for _, d := range devs {
		devsByID[d.DeveloperID] = d
	}
	allocByTicket, err := s.accountingRepo.SumAllocationsByTicket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ticket allocations: %w", err)
	}
	return buildTicketResponses(tickets, devsByID, projects, allocByTicket), nil
}

func projectResponse(p domain.Project, st projectStats) dto.ProjectResponse {
	return dto.ProjectResponse{
		ProjectID:            p.ProjectID,
		Name:                 p.Name,
		Description:          p.Description,
		EpicKey:              p.EpicKey,
		Status:               string(p.Status),
		IsCapitalizable:      p.IsCapitalizable,
		AmortizationMonths:   p.AmortizationMonths,
		TotalCost:            p.TotalCostBasis(),
		AccumulatedCost:      p.AccumulatedCost,
		StartingBalance:      p.StartingBalance,
		StartingAmortization: p.StartingAmortization,
		StartDate:            p.StartDate,
		LaunchDate:           p.LaunchDate,
		OverrideReason:       p.OverrideReason,
		TicketCount:          st.ticketCount,
		EntryCount:           st.entryCount,
		StoryPoints:          st.storyPoints,
		BugPoints:            st.bugPoints,
	}
}
