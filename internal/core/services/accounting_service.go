package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountingService serves read-side views over the generated ledger.
type accountingService struct {
	BaseService
	accountingRepo portsrepo.AccountingReader
	projectRepo    portsrepo.ProjectReader
}

// NewAccountingService creates the ledger read service.
func NewAccountingService(accountingRepo portsrepo.AccountingReader, projectRepo portsrepo.ProjectReader) portssvc.AccountingSvcFacade {
	return &accountingService{
		accountingRepo: accountingRepo,
		projectRepo:    projectRepo,
	}
}

var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

// ListPeriods returns all generated periods with their entries, newest first.
func (s *accountingService) ListPeriods(ctx context.Context) ([]dto.PeriodResponse, error) {
	periods, err := s.accountingRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	projectNames, err := s.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		entries, err := s.accountingRepo.ListEntriesByPeriod(ctx, p.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries for period %d/%d: %w", p.Month, p.Year, err)
		}
		summaries := make([]dto.EntrySummary, 0, len(entries))
		for _, e := range entries {
			summaries = append(summaries, dto.EntrySummary{
				EntryID:       e.EntryID,
				EntryType:     string(e.EntryType),
				DebitAccount:  e.DebitAccount,
				CreditAccount: e.CreditAccount,
				Amount:        e.Amount,
				Description:   e.Description,
				ProjectID:     e.ProjectID,
				ProjectName:   projectNames[e.ProjectID],
			})
		}
		out = append(out, dto.PeriodResponse{
			PeriodID:          p.PeriodID,
			Month:             p.Month,
			Year:              p.Year,
			Status:            string(p.Status),
			TotalCapitalized:  p.TotalCapitalized,
			TotalExpensed:     p.TotalExpensed,
			TotalAmortization: p.TotalAmortization,
			JournalEntries:    summaries,
		})
	}
	return out, nil
}

// EntryAuditDetail returns one entry's audit view: its trails largest
// first, a developer rollup for capitalization/expense entries, and a
// freshly recomputed amortization schedule for amortization entries,
// anchored to the 15th of the entry's period month.
func (s *accountingService) EntryAuditDetail(ctx context.Context, entryID string) (*dto.EntryAuditResponse, error) {
	entry, err := s.accountingRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	period, err := s.accountingRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry period: %w", err)
	}
	project, err := s.projectRepo.FindProjectByID(ctx, entry.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry project: %w", err)
	}

	trails, tickets, err := s.trailsWithTickets(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EntryAuditResponse{
		EntryID:       entry.EntryID,
		EntryType:     string(entry.EntryType),
		DebitAccount:  entry.DebitAccount,
		CreditAccount: entry.CreditAccount,
		Amount:        entry.Amount,
		Description:   entry.Description,
		Project:       dto.ProjectRef{ProjectID: project.ProjectID, Name: project.Name, Status: string(project.Status)},
		Period:        dto.PeriodRef{Month: period.Month, Year: period.Year},
		AuditTrails:   trailDetails(trails, tickets),
	}

	switch entry.EntryType {
	case domain.EntryCapitalization, domain.EntryExpense:
		resp.DeveloperSummary = rollupByDeveloper(trails, tickets)
	case domain.EntryAmortization:
		if _, inService := project.ServiceState().InService(); inService {
			schedule := accounting.CalculateAmortization(
				project.AccumulatedCost, project.StartingBalance, project.StartingAmortization,
				project.AmortizationMonths, project.ServiceState(),
				accounting.MidMonthAnchor(period.Month, period.Year))
			resp.AmortizationDetails = &dto.AmortizationDetails{
				TotalCostBasis:       project.TotalCostBasis(),
				AccumulatedCost:      project.AccumulatedCost,
				StartingBalance:      project.StartingBalance,
				StartingAmortization: project.StartingAmortization,
				UsefulLifeMonths:     project.AmortizationMonths,
				MonthlyRate:          schedule.MonthlyAmortization,
				MonthsElapsed:        schedule.MonthsElapsed,
				TotalAmortization:    schedule.TotalAmortization,
				NetBookValue:         schedule.NetBookValue,
				LaunchDate:           project.LaunchDate,
			}
		}
	}
	return resp, nil
}

var monthNames = [...]string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// csvColumns is the audit export layout: entry debit/credit lines followed
// by supporting detail rows.
var csvColumns = []string{
	"Entry Type", "Account", "Debit", "Credit", "Project",
	"Description", "Developer", "Ticket ID", "Ticket Summary",
	"Issue Type", "Story Points", "Allocated Amount",
	"Launch Date", "Useful Life (Months)", "Monthly Rate",
	"Months Elapsed", "Total Cost Basis", "Accumulated Amortization",
	"Net Book Value",
}

// ExportPeriodCSV renders the period's entries, ticket-level supporting
// detail and amortization schedules in one flat CSV audit document.
func (s *accountingService) ExportPeriodCSV(ctx context.Context, month, year int) (string, []byte, error) {
	if err := validatePeriod(month, year); err != nil {
		return "", nil, err
	}
	period, err := s.accountingRepo.FindPeriod(ctx, month, year)
	if err != nil {
		return "", nil, err
	}
	entries, err := s.accountingRepo.ListEntriesByPeriod(ctx, period.PeriodID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list period entries: %w", err)
	}
	projects, err := s.projectMap(ctx)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow := func(cells map[int]string) {
		row := make([]string, len(csvColumns))
		for i, v := range cells {
			row[i] = v
		}
		// Errors surface on Flush.
		_ = w.Write(row)
	}

	_ = w.Write(csvColumns)

	for _, entry := range entries {
		project := projects[entry.ProjectID]
		amount := entry.Amount.StringFixed(2)

		writeRow(map[int]string{0: string(entry.EntryType), 1: entry.DebitAccount, 2: amount, 4: project.Name, 5: entry.Description})
		writeRow(map[int]string{0: string(entry.EntryType), 1: entry.CreditAccount, 3: amount, 4: project.Name, 5: entry.Description})

		trails, tickets, err := s.trailsWithTickets(ctx, entry.EntryID)
		if err != nil {
			return "", nil, err
		}
		for _, trail := range trails {
			ticket := tickets[trail.TicketRef]
			writeRow(map[int]string{
				4:  project.Name,
				5:  "Supporting Detail",
				6:  trail.DeveloperName,
				7:  trail.TicketID,
				8:  ticket.Summary,
				9:  string(ticket.IssueType),
				10: fmt.Sprintf("%d", ticket.StoryPoints),
				11: trail.AllocatedAmount.StringFixed(2),
			})
		}

		if entry.EntryType == domain.EntryAmortization {
			if launch, inService := project.ServiceState().InService(); inService {
				schedule := accounting.CalculateAmortization(
					project.AccumulatedCost, project.StartingBalance, project.StartingAmortization,
					project.AmortizationMonths, project.ServiceState(),
					accounting.MidMonthAnchor(month, year))
				writeRow(map[int]string{
					4:  project.Name,
					5:  "Amortization Schedule Detail",
					12: launch.Format("2006-01-02"),
					13: fmt.Sprintf("%d", project.AmortizationMonths),
					14: schedule.MonthlyAmortization.StringFixed(2),
					15: fmt.Sprintf("%d", schedule.MonthsElapsed),
					16: project.TotalCostBasis().StringFixed(2),
					17: schedule.TotalAmortization.StringFixed(2),
					18: schedule.NetBookValue.StringFixed(2),
				})
			}
		}

		writeRow(nil)
	}

	writeRow(map[int]string{0: "TOTALS"})
	writeRow(map[int]string{0: "Capitalized", 2: period.TotalCapitalized.StringFixed(2), 3: period.TotalCapitalized.StringFixed(2)})
	writeRow(map[int]string{0: "Expensed", 2: period.TotalExpensed.StringFixed(2), 3: period.TotalExpensed.StringFixed(2)})
	writeRow(map[int]string{0: "Amortization", 2: period.TotalAmortization.StringFixed(2), 3: period.TotalAmortization.StringFixed(2)})

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to render CSV: %w", err)
	}

	filename := fmt.Sprintf("Audit_Trail_%s_%d.csv", monthNames[month-1], year)
	return filename, buf.Bytes(), nil
}

func (s *accountingService) projectNames(ctx context.Context) (map[string]string, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ProjectID] = p.Name
	}
	return names, nil
}

func (s *accountingService) projectMap(ctx context.Context) (map[string]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	byID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ProjectID] = p
	}
	return byID, nil
}

func (s *accountingService) trailsWithTickets(ctx context.Context, entryID string) ([]domain.AuditTrail, map[string]domain.Ticket, error) {
	trails, err := s.accountingRepo.ListTrailsByEntry(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list audit trails: %w", err)
	}
	ids := make([]string, 0, len(trails))
	for _, t := range trails {
		ids = append(ids, t.TicketRef)
	}
	tickets, err := s.accountingRepo.FindTicketsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load trail tickets: %w", err)
	}
	return trails, tickets, nil
}

func trailDetails(trails []domain.AuditTrail, tickets map[string]domain.Ticket) []dto.AuditTrailDetail {
	details := make([]dto.AuditTrailDetail, 0, len(trails))
	for _, t := range trails {
		ticket := tickets[t.TicketRef]
		details = append(details, dto.AuditTrailDetail{
			TrailID:         t.TrailID,
			TicketID:        t.TicketID,
			TicketSummary:   ticket.Summary,
			IssueType:       string(ticket.IssueType),
			StoryPoints:     ticket.StoryPoints,
			DeveloperName:   t.DeveloperName,
			AllocatedAmount: t.AllocatedAmount,
		})
	}
	return details
}

func rollupByDeveloper(trails []domain.AuditTrail, tickets map[string]domain.Ticket) []dto.DeveloperRollup {
	byName := make(map[string]*dto.DeveloperRollup)
	for _, t := range trails {
		r, ok := byName[t.DeveloperName]
		if !ok {
			r = &dto.DeveloperRollup{Name: t.DeveloperName, TotalAmount: decimal.Zero}
			byName[t.DeveloperName] = r
		}
		r.TicketCount++
		r.TotalPoints += tickets[t.TicketRef].StoryPoints
		r.TotalAmount = r.TotalAmount.Add(t.AllocatedAmount)
	}
	rollups := make([]dto.DeveloperRollup, 0, len(byName))
	for _, r := range byName {
		rollups = append(rollups, *r)
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].Name < rollups[j].Name })
	return rollups
}
