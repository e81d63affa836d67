package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type AccountingServiceTestSuite struct {
	suite.Suite
	mockAccountingRepo *MockAccountingRepository
	mockProjectRepo    *MockProjectRepository
	service            portssvc.AccountingSvcFacade
	ctx                context.Context
}

func (suite *AccountingServiceTestSuite) SetupTest() {
	suite.mockAccountingRepo = new(MockAccountingRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewAccountingService(suite.mockAccountingRepo, suite.mockProjectRepo)
	suite.ctx = context.Background()
}

func (suite *AccountingServiceTestSuite) TestListPeriods() {
	periods := []domain.AccountingPeriod{
		{PeriodID: "period-1", Month: 2, Year: 2025, Status: domain.PeriodOpen,
			TotalCapitalized: dec("10000"), TotalExpensed: dec("2500"), TotalAmortization: dec("500")},
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", EntryType: domain.EntryCapitalization, Amount: dec("10000"), ProjectID: "proj-1"},
	}
	projects := []domain.Project{{ProjectID: "proj-1", Name: "Billing Engine"}}

	suite.mockAccountingRepo.On("ListPeriods", suite.ctx).Return(periods, nil).Once()
	suite.mockProjectRepo.On("ListProjects", suite.ctx).Return(projects, nil).Once()
	suite.mockAccountingRepo.On("ListEntriesByPeriod", suite.ctx, "period-1").Return(entries, nil).Once()

	out, err := suite.service.ListPeriods(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(out, 1)
	suite.Equal(2, out[0].Month)
	suite.Require().Len(out[0].JournalEntries, 1)
	suite.Equal("Billing Engine", out[0].JournalEntries[0].ProjectName)
}

func (suite *AccountingServiceTestSuite) TestEntryAuditDetailRollsUpByDeveloper() {
	entry := &domain.JournalEntry{
		EntryID: "e1", EntryType: domain.EntryCapitalization,
		Amount: dec("10000"), PeriodID: "period-1", ProjectID: "proj-1",
	}
	period := &domain.AccountingPeriod{PeriodID: "period-1", Month: 1, Year: 2025}
	project := &domain.Project{ProjectID: "proj-1", Name: "Billing Engine", Status: domain.StatusDev}
	trails := []domain.AuditTrail{
		{TrailID: "tr1", JournalEntryID: "e1", TicketRef: "t1", TicketID: "ENG-1", DeveloperName: "Dana", AllocatedAmount: dec("6000")},
		{TrailID: "tr2", JournalEntryID: "e1", TicketRef: "t2", TicketID: "ENG-2", DeveloperName: "Avery", AllocatedAmount: dec("4000")},
	}
	tickets := map[string]domain.Ticket{
		"t1": {ID: "t1", TicketID: "ENG-1", Summary: "Build invoicing", IssueType: domain.IssueStory, StoryPoints: 6},
		"t2": {ID: "t2", TicketID: "ENG-2", Summary: "Build exports", IssueType: domain.IssueStory, StoryPoints: 4},
	}

	suite.mockAccountingRepo.On("FindEntryByID", suite.ctx, "e1").Return(entry, nil).Once()
	suite.mockAccountingRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", suite.ctx, "proj-1").Return(project, nil).Once()
	suite.mockAccountingRepo.On("ListTrailsByEntry", suite.ctx, "e1").Return(trails, nil).Once()
	suite.mockAccountingRepo.On("FindTicketsByIDs", suite.ctx, []string{"t1", "t2"}).Return(tickets, nil).Once()

	resp, err := suite.service.EntryAuditDetail(suite.ctx, "e1")

	suite.Require().NoError(err)
	suite.Equal("CAPITALIZATION", resp.EntryType)
	suite.Require().Len(resp.AuditTrails, 2)
	suite.Equal("Build invoicing", resp.AuditTrails[0].TicketSummary)

	// Rollup is sorted by developer name.
	suite.Require().Len(resp.DeveloperSummary, 2)
	suite.Equal("Avery", resp.DeveloperSummary[0].Name)
	suite.True(resp.DeveloperSummary[0].TotalAmount.Equal(dec("4000")))
	suite.Equal(4, resp.DeveloperSummary[0].TotalPoints)
	suite.Equal("Dana", resp.DeveloperSummary[1].Name)
	suite.Nil(resp.AmortizationDetails)
}

func (suite *AccountingServiceTestSuite) TestEntryAuditDetailRecomputesAmortization() {
	launch := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		EntryID: "e1", EntryType: domain.EntryAmortization,
		Amount: dec("2500"), PeriodID: "period-1", ProjectID: "proj-1",
	}
	period := &domain.AccountingPeriod{PeriodID: "period-1", Month: 1, Year: 2025}
	project := &domain.Project{
		ProjectID: "proj-1", Name: "Checkout", Status: domain.StatusLive,
		LaunchDate: &launch, AmortizationMonths: 36, AccumulatedCost: dec("90000"),
	}

	suite.mockAccountingRepo.On("FindEntryByID", suite.ctx, "e1").Return(entry, nil).Once()
	suite.mockAccountingRepo.On("FindPeriodByID", suite.ctx, "period-1").Return(period, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", suite.ctx, "proj-1").Return(project, nil).Once()
	suite.mockAccountingRepo.On("ListTrailsByEntry", suite.ctx, "e1").Return([]domain.AuditTrail{}, nil).Once()
	suite.mockAccountingRepo.On("FindTicketsByIDs", suite.ctx, []string{}).Return(map[string]domain.Ticket{}, nil).Once()

	resp, err := suite.service.EntryAuditDetail(suite.ctx, "e1")

	suite.Require().NoError(err)
	suite.Empty(resp.DeveloperSummary)
	suite.Require().NotNil(resp.AmortizationDetails)
	details := resp.AmortizationDetails
	suite.Equal(36, details.UsefulLifeMonths)
	// Anchored to Jan 15 2025: December and January have amortized.
	suite.Equal(2, details.MonthsElapsed)
	suite.True(details.MonthlyRate.Equal(dec("2500")))
	suite.True(details.NetBookValue.Equal(dec("85000")))
}

func (suite *AccountingServiceTestSuite) TestEntryAuditDetailUnknownEntry() {
	suite.mockAccountingRepo.On("FindEntryByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.EntryAuditDetail(suite.ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountingServiceTestSuite) TestExportPeriodCSV() {
	period := &domain.AccountingPeriod{
		PeriodID: "period-1", Month: 1, Year: 2025, Status: domain.PeriodOpen,
		TotalCapitalized: dec("10000"), TotalExpensed: dec("2500"), TotalAmortization: dec("0"),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", EntryType: domain.EntryCapitalization, DebitAccount: "WIP - Software Assets",
			CreditAccount: "R&D Salaries / Payroll Expense", Amount: dec("10000"),
			Description: "Capitalize Billing Engine development costs", PeriodID: "period-1", ProjectID: "proj-1"},
	}
	trails := []domain.AuditTrail{
		{TrailID: "tr1", JournalEntryID: "e1", TicketRef: "t1", TicketID: "ENG-1", DeveloperName: "Dana", AllocatedAmount: dec("10000")},
	}
	tickets := map[string]domain.Ticket{
		"t1": {ID: "t1", TicketID: "ENG-1", Summary: "Build invoicing", IssueType: domain.IssueStory, StoryPoints: 8},
	}
	projects := []domain.Project{{ProjectID: "proj-1", Name: "Billing Engine"}}

	suite.mockAccountingRepo.On("FindPeriod", suite.ctx, 1, 2025).Return(period, nil).Once()
	suite.mockAccountingRepo.On("ListEntriesByPeriod", suite.ctx, "period-1").Return(entries, nil).Once()
	suite.mockProjectRepo.On("ListProjects", suite.ctx).Return(projects, nil).Once()
	suite.mockAccountingRepo.On("ListTrailsByEntry", suite.ctx, "e1").Return(trails, nil).Once()
	suite.mockAccountingRepo.On("FindTicketsByIDs", suite.ctx, []string{"t1"}).Return(tickets, nil).Once()

	filename, body, err := suite.service.ExportPeriodCSV(suite.ctx, 1, 2025)

	suite.Require().NoError(err)
	suite.Equal("Audit_Trail_January_2025.csv", filename)

	content := string(body)
	suite.True(strings.HasPrefix(content, "Entry Type,Account,Debit,Credit"), "unexpected header: %s", content)
	suite.Contains(content, "WIP - Software Assets,10000.00")
	suite.Contains(content, "R&D Salaries / Payroll Expense,,10000.00")
	suite.Contains(content, "Supporting Detail,Dana,ENG-1,Build invoicing,STORY,8,10000.00")
	suite.Contains(content, "TOTALS")
	suite.Contains(content, "Capitalized,,10000.00,10000.00")
}

func (suite *AccountingServiceTestSuite) TestExportPeriodCSVUnknownPeriod() {
	suite.mockAccountingRepo.On("FindPeriod", suite.ctx, 6, 2025).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ExportPeriodCSV(suite.ctx, 6, 2025)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingServiceTestSuite))
}
