package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// defaultFringeRate applies when the global config row is absent or unreadable.
var defaultFringeRate = decimal.RequireFromString("0.25")

// allocationService loads period snapshots and runs the cost allocator over them.
type allocationService struct {
	BaseService
	developerRepo portsrepo.DeveloperReader
	projectRepo   portsrepo.ProjectReader
	ticketRepo    portsrepo.TicketReader
	configRepo    portsrepo.ConfigReader
}

// NewAllocationService creates the period cost allocator.
func NewAllocationService(
	developerRepo portsrepo.DeveloperReader,
	projectRepo portsrepo.ProjectReader,
	ticketRepo portsrepo.TicketReader,
	configRepo portsrepo.ConfigReader,
) portssvc.AllocationSvcFacade {
	return &allocationService{
		developerRepo: developerRepo,
		projectRepo:   projectRepo,
		ticketRepo:    ticketRepo,
		configRepo:    configRepo,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", apperrors.ErrValidation, month)
	}
	if year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", apperrors.ErrValidation, year)
	}
	return nil
}

// Snapshot loads everything one period's allocation needs in a single pass:
// active developers, the fringe default, and the resolved-ticket index with
// each ticket pre-joined to its project and pre-classified. Tickets assigned
// to deactivated developers are excluded from the period; a ticket whose
// assignee or project does not exist at all fails the load, because masking
// it would produce a silently wrong ledger.
func (s *allocationService) Snapshot(ctx context.Context, month, year int) (*domain.PeriodSnapshot, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	from, to := accounting.PeriodWindow(month, year)

	activeDevs, err := s.developerRepo.ListActiveDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active developers: %w", err)
	}

	allDevs, err := s.developerRepo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load developers: %w", err)
	}
	knownDevs := make(map[string]bool, len(allDevs))
	for _, d := range allDevs {
		knownDevs[d.DeveloperID] = true
	}
	activeByID := make(map[string]bool, len(activeDevs))
	for _, d := range activeDevs {
		activeByID[d.DeveloperID] = true
	}

	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	projectsByID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ProjectID] = p
	}

	tickets, err := s.ticketRepo.ListResolvedTicketsInWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load resolved tickets: %w", err)
	}

	periodTickets := make([]domain.PeriodTicket, 0, len(tickets))
	for _, t := range tickets {
		if !knownDevs[t.AssigneeID] {
			return nil, fmt.Errorf("%w: ticket %s references unknown developer %s", apperrors.ErrDataIntegrity, t.TicketID, t.AssigneeID)
		}
		if !activeByID[t.AssigneeID] {
			continue
		}
		project, ok := projectsByID[t.ProjectID]
		if !ok {
			return nil, fmt.Errorf("%w: ticket %s references unknown project %s", apperrors.ErrDataIntegrity, t.TicketID, t.ProjectID)
		}
		periodTickets = append(periodTickets, domain.PeriodTicket{
			Ticket:        t,
			Project:       project,
			Capitalizable: t.IsCapitalizable(project),
		})
	}

	return &domain.PeriodSnapshot{
		Month:             month,
		Year:              year,
		From:              from,
		To:                to,
		Developers:        activeDevs,
		Tickets:           periodTickets,
		DefaultFringeRate: s.fringeDefault(ctx),
	}, nil
}

// CalculatePeriodCosts splits each active developer's loaded cost for the
// period proportionally by resolved story points.
func (s *allocationService) CalculatePeriodCosts(ctx context.Context, month, year int) ([]domain.PeriodCostResult, error) {
	snap, err := s.Snapshot(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return accounting.AllocateCosts(*snap), nil
}

// fringeDefault reads the global fringe rate, falling back to the built-in
// default when the row is missing or malformed. A malformed rate is logged
// rather than fatal: payroll math must keep working while an operator fixes
// the config.
func (s *allocationService) fringeDefault(ctx context.Context) decimal.Decimal {
	cfg, err := s.configRepo.FindConfigByKey(ctx, domain.ConfigFringeBenefitRate)
	if err != nil {
		s.LogWarn(ctx, "Global fringe rate not configured, using default",
			slog.String("default", defaultFringeRate.String()))
		return defaultFringeRate
	}
	rate, err := decimal.NewFromString(cfg.Value)
	if err != nil {
		s.LogWarn(ctx, "Global fringe rate is not a number, using default",
			slog.String("value", cfg.Value),
			slog.String("default", defaultFringeRate.String()))
		return defaultFringeRate
	}
	return rate
}
