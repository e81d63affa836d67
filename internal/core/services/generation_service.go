package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// generationService orchestrates the allocator and the amortization
// calculator into one period's full set of journal entries and audit trails.
type generationService struct {
	BaseService
	allocation     portssvc.AllocationSvcFacade
	projectRepo    portsrepo.ProjectReader
	accountingRepo portsrepo.AccountingRepositoryFacade
}

// NewGenerationService creates the journal entry generator.
func NewGenerationService(
	allocation portssvc.AllocationSvcFacade,
	projectRepo portsrepo.ProjectReader,
	accountingRepo portsrepo.AccountingRepositoryFacade,
) portssvc.GenerationSvcFacade {
	return &generationService{
		allocation:     allocation,
		projectRepo:    projectRepo,
		accountingRepo: accountingRepo,
	}
}

var _ portssvc.GenerationSvcFacade = (*generationService)(nil)

// projectTally accumulates one project's dollars during an entry pass.
type projectTally struct {
	projectID string
	name      string
	amount    decimal.Decimal
}

// GenerateEntries recomputes and replaces the period's entire ledger slice.
// Everything is computed in memory from one snapshot; the single repository
// write at the end is one database transaction, so a failure leaves the
// period's prior state intact.
func (s *generationService) GenerateEntries(ctx context.Context, month, year int, actorID string) (*dto.GenerationTotals, error) {
	snap, err := s.allocation.Snapshot(ctx, month, year)
	if err != nil {
		return nil, err
	}
	results := accounting.AllocateCosts(*snap)

	// The period may not exist yet; an absent period simply means this is
	// the first generation run for the month.
	existingPeriodID := ""
	if existing, err := s.accountingRepo.FindPeriod(ctx, month, year); err == nil {
		existingPeriodID = existing.PeriodID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}

	var entries []domain.JournalEntry
	var trails []domain.AuditTrail

	// Capitalization pass: one entry per project, split back down to
	// tickets by each developer's point share within the project.
	capTallies := tallyByProject(results, true)
	newCapByProject := make(map[string]decimal.Decimal, len(capTallies))
	totalCapitalized := decimal.Zero
	for _, tally := range capTallies {
		entry := s.newEntry(domain.EntryCapitalization, tally.amount,
			fmt.Sprintf("Capitalize %s development costs", tally.name), tally.projectID, audit)
		entries = append(entries, entry)
		trails = append(trails, ticketTrails(entry.EntryID, *snap, results, tally.projectID, true, audit)...)
		newCapByProject[tally.projectID] = entry.Amount
		totalCapitalized = totalCapitalized.Add(entry.Amount)
	}

	// Expense pass: the complement of each developer's capitalizable work,
	// redistributed across their non-capitalizable project groups by point
	// share.
	totalExpensed := decimal.Zero
	for _, tally := range tallyByProject(results, false) {
		entry := s.newEntry(domain.EntryExpense, tally.amount,
			fmt.Sprintf("Expense %s non-capitalizable costs", tally.name), tally.projectID, audit)
		entries = append(entries, entry)
		trails = append(trails, ticketTrails(entry.EntryID, *snap, results, tally.projectID, false, audit)...)
		totalExpensed = totalExpensed.Add(entry.Amount)
	}

	// Amortization pass: every live, launched project as of the fixed
	// mid-month anchor. Accumulated cost is derived from the ledger (the
	// all-time capitalization sum excluding the period being regenerated,
	// plus what this run is about to post) so regeneration cannot
	// double-count.
	amortEntries, totalAmortization, err := s.amortizationEntries(ctx, month, year, existingPeriodID, newCapByProject, audit)
	if err != nil {
		return nil, err
	}
	entries = append(entries, amortEntries...)

	period := domain.AccountingPeriod{
		PeriodID:          uuid.NewString(),
		Month:             month,
		Year:              year,
		Status:            domain.PeriodOpen,
		TotalCapitalized:  totalCapitalized,
		TotalExpensed:     totalExpensed,
		TotalAmortization: totalAmortization,
		AuditFields:       audit,
	}

	recost, err := s.recostProjectIDs(ctx, existingPeriodID, newCapByProject)
	if err != nil {
		return nil, err
	}

	persisted, err := s.accountingRepo.ReplacePeriodEntries(ctx, period, entries, trails, recost)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist generated entries",
			slog.Int("month", month), slog.Int("year", year))
		return nil, fmt.Errorf("failed to persist generated entries: %w", err)
	}

	s.LogInfo(ctx, "Journal entries generated",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int("entry_count", len(entries)),
		slog.Int("trail_count", len(trails)),
		slog.String("total_capitalized", persisted.TotalCapitalized.String()),
		slog.String("total_expensed", persisted.TotalExpensed.String()),
		slog.String("total_amortization", persisted.TotalAmortization.String()))

	return &dto.GenerationTotals{
		Message:           "Journal entries generated",
		TotalCapitalized:  persisted.TotalCapitalized,
		TotalExpensed:     persisted.TotalExpensed,
		TotalAmortization: persisted.TotalAmortization,
	}, nil
}

// newEntry builds one journal entry with its fixed account labels. The
// PeriodID is left blank; the repository assigns it when the period row is
// found or created inside the write transaction.
func (s *generationService) newEntry(entryType domain.EntryType, amount decimal.Decimal, description, projectID string, audit domain.AuditFields) domain.JournalEntry {
	accounts, _ := entryType.Accounts()
	return domain.JournalEntry{
		EntryID:       uuid.NewString(),
		EntryType:     entryType,
		DebitAccount:  accounts.DebitAccount,
		CreditAccount: accounts.CreditAccount,
		Amount:        amount.Round(2),
		Description:   description,
		ProjectID:     projectID,
		AuditFields:   audit,
	}
}

// tallyByProject aggregates developer project groups of one treatment into
// per-project dollar totals, ordered by project name for deterministic
// entry creation. Capitalizable groups carry their amount directly; expense
// dollars are the group's point fraction of the developer's loaded cost.
func tallyByProject(results []domain.PeriodCostResult, capitalizable bool) []projectTally {
	byProject := make(map[string]*projectTally)
	for _, r := range results {
		for _, g := range r.ProjectBreakdown {
			if g.IsCapitalizable != capitalizable || g.Points == 0 {
				continue
			}
			amount := g.Amount
			if !capitalizable {
				amount = r.LoadedCost.
					Mul(decimal.NewFromInt(int64(g.Points))).
					Div(decimal.NewFromInt(int64(r.TotalPoints)))
			}
			if !amount.IsPositive() {
				continue
			}
			t, ok := byProject[g.ProjectID]
			if !ok {
				t = &projectTally{projectID: g.ProjectID, name: g.ProjectName, amount: decimal.Zero}
				byProject[g.ProjectID] = t
			}
			t.amount = t.amount.Add(amount)
		}
	}

	tallies := make([]projectTally, 0, len(byProject))
	for _, t := range byProject {
		tallies = append(tallies, *t)
	}
	sort.Slice(tallies, func(i, j int) bool { return tallies[i].name < tallies[j].name })
	return tallies
}

// ticketTrails splits one entry's project dollars back down to individual
// tickets: each contributing developer's project-group dollars are divided
// across that developer's tickets in the group by point share.
func ticketTrails(entryID string, snap domain.PeriodSnapshot, results []domain.PeriodCostResult, projectID string, capitalizable bool, audit domain.AuditFields) []domain.AuditTrail {
	byDev := snap.TicketsByDeveloper()

	var trails []domain.AuditTrail
	for _, r := range results {
		for _, g := range r.ProjectBreakdown {
			if g.ProjectID != projectID || g.IsCapitalizable != capitalizable || g.Points == 0 {
				continue
			}
			groupAmount := g.Amount
			if !capitalizable {
				groupAmount = r.LoadedCost.
					Mul(decimal.NewFromInt(int64(g.Points))).
					Div(decimal.NewFromInt(int64(r.TotalPoints)))
			}
			groupPoints := decimal.NewFromInt(int64(g.Points))
			for _, pt := range byDev[r.DeveloperID] {
				if pt.Ticket.ProjectID != projectID || pt.Capitalizable != capitalizable {
					continue
				}
				allocated := groupAmount.
					Mul(decimal.NewFromInt(int64(pt.Ticket.StoryPoints))).
					Div(groupPoints)
				trails = append(trails, domain.AuditTrail{
					TrailID:         uuid.NewString(),
					JournalEntryID:  entryID,
					TicketRef:       pt.Ticket.ID,
					TicketID:        pt.Ticket.TicketID,
					DeveloperName:   r.DeveloperName,
					AllocatedAmount: allocated.Round(2),
					AuditFields:     audit,
				})
			}
		}
	}
	return trails
}

// amortizationEntries builds one AMORTIZATION entry per live, launched
// project whose monthly charge is positive, as of the 15th of the period
// month. No audit trails: amortization has no ticket-level detail.
func (s *generationService) amortizationEntries(ctx context.Context, month, year int, excludePeriodID string, newCapByProject map[string]decimal.Decimal, audit domain.AuditFields) ([]domain.JournalEntry, decimal.Decimal, error) {
	liveProjects, err := s.projectRepo.ListAmortizableProjects(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load amortizable projects: %w", err)
	}

	priorCaps, err := s.accountingRepo.SumCapitalizationByProject(ctx, excludePeriodID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to sum capitalization history: %w", err)
	}

	asOf := accounting.MidMonthAnchor(month, year)
	var entries []domain.JournalEntry
	total := decimal.Zero
	for _, p := range liveProjects {
		if p.AmortizationMonths <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: project %s has non-positive amortization life %d",
				apperrors.ErrDataIntegrity, p.EpicKey, p.AmortizationMonths)
		}
		accumulated := priorCaps[p.ProjectID].Add(newCapByProject[p.ProjectID])
		schedule := accounting.CalculateAmortization(
			accumulated, p.StartingBalance, p.StartingAmortization,
			p.AmortizationMonths, p.ServiceState(), asOf)
		if !schedule.MonthlyAmortization.IsPositive() {
			continue
		}
		entry := s.newEntry(domain.EntryAmortization, schedule.MonthlyAmortization,
			fmt.Sprintf("Monthly amortization for %s", p.Name), p.ProjectID, audit)
		entries = append(entries, entry)
		total = total.Add(entry.Amount)
	}
	return entries, total, nil
}

// recostProjectIDs lists every project whose ledger-derived accumulated
// cost must be recomputed after the write: projects capitalized in this
// run, plus projects that had capitalization entries in the period's prior
// generation (their sums shrink when the new run no longer includes them).
func (s *generationService) recostProjectIDs(ctx context.Context, existingPeriodID string, newCapByProject map[string]decimal.Decimal) ([]string, error) {
	seen := make(map[string]bool, len(newCapByProject))
	for projectID := range newCapByProject {
		seen[projectID] = true
	}
	if existingPeriodID != "" {
		prior, err := s.accountingRepo.ListEntriesByPeriod(ctx, existingPeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to list prior period entries: %w", err)
		}
		for _, e := range prior {
			if e.EntryType == domain.EntryCapitalization {
				seen[e.ProjectID] = true
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
