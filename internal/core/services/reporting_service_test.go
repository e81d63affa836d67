package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/core/services"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockDeveloperRepo  *MockDeveloperRepository
	mockProjectRepo    *MockProjectRepository
	mockTicketRepo     *MockTicketRepository
	mockConfigRepo     *MockConfigRepository
	mockAccountingRepo *MockAccountingRepository
	mockPayrollRepo    *MockPayrollRepository
	service            portssvc.ReportingSvcFacade
	ctx                context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockDeveloperRepo = new(MockDeveloperRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockTicketRepo = new(MockTicketRepository)
	suite.mockConfigRepo = new(MockConfigRepository)
	suite.mockAccountingRepo = new(MockAccountingRepository)
	suite.mockPayrollRepo = new(MockPayrollRepository)

	allocation := services.NewAllocationService(
		suite.mockDeveloperRepo, suite.mockProjectRepo, suite.mockTicketRepo, suite.mockConfigRepo)
	suite.service = services.NewReportingService(
		allocation, suite.mockDeveloperRepo, suite.mockProjectRepo, suite.mockAccountingRepo, suite.mockPayrollRepo)
	suite.ctx = context.Background()
}

func (suite *ReportingServiceTestSuite) TestPayrollTieOutBalances() {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: dec("10000"), IsActive: true}
	project := domain.Project{ProjectID: "proj-1", Name: "Billing Engine", Status: domain.StatusDev, IsCapitalizable: true}
	tickets := []domain.Ticket{
		{ID: "t1", TicketID: "ENG-1", IssueType: domain.IssueStory, StoryPoints: 8, ResolutionDate: resolvedIn(1, 2025, 10), AssigneeID: "dev-1", ProjectID: "proj-1"},
		{ID: "t2", TicketID: "ENG-2", IssueType: domain.IssueBug, StoryPoints: 2, ResolutionDate: resolvedIn(1, 2025, 12), AssigneeID: "dev-1", ProjectID: "proj-1"},
	}
	from, to := accounting.PeriodWindow(1, 2025)

	suite.mockDeveloperRepo.On("ListActiveDevelopers", suite.ctx).Return([]domain.Developer{dev}, nil).Once()
	suite.mockDeveloperRepo.On("ListDevelopers", suite.ctx).Return([]domain.Developer{dev}, nil).Once()
	suite.mockProjectRepo.On("ListProjects", suite.ctx).Return([]domain.Project{project}, nil).Once()
	suite.mockTicketRepo.On("ListResolvedTicketsInWindow", suite.ctx, from, to).Return(tickets, nil).Once()
	suite.mockConfigRepo.On("FindConfigByKey", suite.ctx, domain.ConfigFringeBenefitRate).Return(fringeConfig("0.25"), nil).Once()
	suite.mockPayrollRepo.On("SumGrossByDeveloper", suite.ctx, from, to).
		Return(map[string]decimal.Decimal{"dev-1": dec("12400")}, nil).Once()

	report, err := suite.service.PayrollTieOut(suite.ctx, 1, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(report.Developers, 1)
	row := report.Developers[0]
	suite.Equal("Dana", row.Name)
	suite.True(row.Capitalized.Equal(dec("10000")))
	suite.True(row.Expensed.Equal(dec("2500")))
	suite.True(row.Total.Equal(dec("12500")))
	suite.True(row.TotalPayroll.Equal(dec("12400")))
	// Capitalized + expensed is the loaded cost by construction.
	suite.True(row.Delta.IsZero(), "delta was %s", row.Delta)

	suite.True(report.Totals.Total.Equal(dec("12500")))
	suite.True(report.Totals.Delta.IsZero())
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPayrollTieOutWithoutRecordedPayroll() {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: dec("8000"), IsActive: true}
	project := domain.Project{ProjectID: "proj-1", Name: "Billing Engine", Status: domain.StatusDev, IsCapitalizable: true}
	tickets := []domain.Ticket{
		{ID: "t1", TicketID: "ENG-1", IssueType: domain.IssueStory, StoryPoints: 4, ResolutionDate: resolvedIn(1, 2025, 10), AssigneeID: "dev-1", ProjectID: "proj-1"},
	}
	from, to := accounting.PeriodWindow(1, 2025)

	suite.mockDeveloperRepo.On("ListActiveDevelopers", suite.ctx).Return([]domain.Developer{dev}, nil).Once()
	suite.mockDeveloperRepo.On("ListDevelopers", suite.ctx).Return([]domain.Developer{dev}, nil).Once()
	suite.mockProjectRepo.On("ListProjects", suite.ctx).Return([]domain.Project{project}, nil).Once()
	suite.mockTicketRepo.On("ListResolvedTicketsInWindow", suite.ctx, from, to).Return(tickets, nil).Once()
	suite.mockConfigRepo.On("FindConfigByKey", suite.ctx, domain.ConfigFringeBenefitRate).Return(fringeConfig("0.25"), nil).Once()
	// No payroll imported for the window is the expected soft case.
	suite.mockPayrollRepo.On("SumGrossByDeveloper", suite.ctx, from, to).
		Return(map[string]decimal.Decimal{}, nil).Once()

	report, err := suite.service.PayrollTieOut(suite.ctx, 1, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(report.Developers, 1)
	suite.True(report.Developers[0].TotalPayroll.IsZero())
	suite.True(report.Developers[0].Delta.IsZero())
}

func (suite *ReportingServiceTestSuite) TestAssetValueReport() {
	launch := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	launched := domain.Project{
		ProjectID: "proj-1", Name: "Billing Engine", Status: domain.StatusLive,
		IsCapitalizable: true, LaunchDate: &launch, AmortizationMonths: 36,
		AccumulatedCost: dec("90000"),
	}
	zeroBasis := domain.Project{
		ProjectID: "proj-2", Name: "Empty", Status: domain.StatusDev, IsCapitalizable: true,
	}
	asOf := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	suite.mockProjectRepo.On("ListCapitalizableProjects", suite.ctx).
		Return([]domain.Project{launched, zeroBasis}, nil).Once()

	resp, err := suite.service.AssetValueReport(suite.ctx, asOf)

	suite.Require().NoError(err)
	rows, ok := resp.Rows.([]domain.AssetValueRow)
	suite.Require().True(ok)
	// The zero-basis project is omitted.
	suite.Require().Len(rows, 1)
	suite.True(rows[0].TotalCost.Equal(dec("90000")))
	suite.True(rows[0].AccumulatedAmortization.Equal(dec("5000")))
	suite.True(rows[0].NetBookValue.Equal(dec("85000")))
	suite.True(resp.Total.Equal(dec("85000")))
}

func (suite *ReportingServiceTestSuite) TestYTDAmortizationCrossesYearBoundary() {
	launch := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
	launched := domain.Project{
		ProjectID: "proj-1", Name: "Billing Engine", Status: domain.StatusLive,
		IsCapitalizable: true, LaunchDate: &launch, AmortizationMonths: 36,
		AccumulatedCost: dec("36000"),
	}
	asOf := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	suite.mockProjectRepo.On("ListAmortizableProjects", suite.ctx).
		Return([]domain.Project{launched}, nil).Once()

	resp, err := suite.service.YTDAmortizationReport(suite.ctx, asOf)

	suite.Require().NoError(err)
	rows, ok := resp.Rows.([]domain.YTDAmortizationRow)
	suite.Require().True(ok)
	suite.Require().Len(rows, 1)
	// Nov and Dec 2024 belong to the prior year; Jan through Mar 2025 is YTD.
	suite.True(rows[0].MonthlyAmortization.Equal(dec("1000")))
	suite.True(rows[0].YTDAmount.Equal(dec("3000")), "ytd was %s", rows[0].YTDAmount)
	suite.True(resp.Total.Equal(dec("3000")))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
