package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
)

var syncSummaries = []string{
	"Implement data export pipeline",
	"Fix pagination on activity feed",
	"Add retry handling to webhook sender",
	"Refactor session cache invalidation",
	"Build bulk import validation",
	"Resolve timezone drift in scheduler",
	"Add audit logging to settings page",
	"Optimize search index rebuild",
	"Fix memory leak in report worker",
	"Implement role-based dashboard filters",
}

// syncService simulates the external issue tracker sync by generating a
// batch of resolved tickets across the existing roster and projects.
type syncService struct {
	BaseService
	developerRepo portsrepo.DeveloperReader
	projectRepo   portsrepo.ProjectReader
	ticketRepo    portsrepo.TicketRepositoryFacade
	rng           *rand.Rand
}

// NewSyncService creates the tracker sync simulator.
func NewSyncService(
	developerRepo portsrepo.DeveloperReader,
	projectRepo portsrepo.ProjectReader,
	ticketRepo portsrepo.TicketRepositoryFacade,
) portssvc.SyncSvcFacade {
	return &syncService{
		developerRepo: developerRepo,
		projectRepo:   projectRepo,
		ticketRepo:    ticketRepo,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// SyncTickets generates 5 to 15 mock resolved tickets dated within the
// current month, assigned randomly across active developers and projects.
// Tracker keys that collide with existing tickets are skipped, so repeated
// syncs only add new work.
func (s *syncService) SyncTickets(ctx context.Context, actorID string) (*dto.UploadResult, error) {
	devs, err := s.developerRepo.ListActiveDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active developers: %w", err)
	}
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(devs) == 0 || len(projects) == 0 {
		return nil, fmt.Errorf("%w: sync requires at least one active developer and one project", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	batch := 5 + s.rng.Intn(11)
	created := 0
	for i := 0; i < batch; i++ {
		project := projects[s.rng.Intn(len(projects))]
		dev := devs[s.rng.Intn(len(devs))]
		resolved := time.Date(now.Year(), now.Month(), 1+s.rng.Intn(now.Day()), 12, 0, 0, 0, time.UTC)

		ticket := domain.Ticket{
			ID:             uuid.NewString(),
			TicketID:       fmt.Sprintf("%s-%d", project.EpicKey, 1000+s.rng.Intn(9000)),
			EpicKey:        project.EpicKey,
			IssueType:      s.randomIssueType(),
			Summary:        syncSummaries[s.rng.Intn(len(syncSummaries))],
			StoryPoints:    1 + s.rng.Intn(8),
			ResolutionDate: &resolved,
			FixVersion:     fmt.Sprintf("%d.%d.0", now.Year()-2020, int(now.Month())),
			AssigneeID:     dev.DeveloperID,
			ProjectID:      project.ProjectID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: actorID,
			},
		}
		if err := s.ticketRepo.CreateTicket(ctx, ticket); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("failed to create ticket %s: %w", ticket.TicketID, err)
		}
		created++
	}

	s.LogInfo(ctx, "Tracker sync complete",
		slog.Int("generated", batch), slog.Int("created", created), slog.String("actor", actorID))
	return &dto.UploadResult{
		Message: fmt.Sprintf("Synced %d new tickets", created),
		Count:   created,
	}, nil
}

// randomIssueType weights toward stories: roughly 60% STORY, 25% BUG, 15% TASK.
func (s *syncService) randomIssueType() domain.IssueType {
	switch n := s.rng.Intn(100); {
	case n < 60:
		return domain.IssueStory
	case n < 85:
		return domain.IssueBug
	default:
		return domain.IssueTask
	}
}
