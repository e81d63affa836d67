package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// dashboardChartMonths caps how much period history the dashboard charts show.
const dashboardChartMonths = 6

// reportingService builds the reconciliation and asset reports. Everything
// here is recomputed from source data on each call rather than read from a
// cache, so the reports always reflect the current directory and ledger.
type reportingService struct {
	BaseService
	allocation     portssvc.AllocationSvcFacade
	developerRepo  portsrepo.DeveloperReader
	projectRepo    portsrepo.ProjectReader
	accountingRepo portsrepo.AccountingReader
	payrollRepo    portsrepo.PayrollReader
}

// NewReportingService creates the reporting service.
func NewReportingService(
	allocation portssvc.AllocationSvcFacade,
	developerRepo portsrepo.DeveloperReader,
	projectRepo portsrepo.ProjectReader,
	accountingRepo portsrepo.AccountingReader,
	payrollRepo portsrepo.PayrollReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		allocation:     allocation,
		developerRepo:  developerRepo,
		projectRepo:    projectRepo,
		accountingRepo: accountingRepo,
		payrollRepo:    payrollRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// PayrollTieOut recomputes the period allocation and proves each developer's
// capitalized plus expensed amounts sum back to their loaded cost, alongside
// whatever payroll was externally recorded for the same window.
func (s *reportingService) PayrollTieOut(ctx context.Context, month, year int) (*domain.TieOutReport, error) {
	results, err := s.allocation.CalculatePeriodCosts(ctx, month, year)
	if err != nil {
		return nil, err
	}

	from, to := accounting.PeriodWindow(month, year)
	grossByDev, err := s.payrollRepo.SumGrossByDeveloper(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load recorded payroll: %w", err)
	}

	report := &domain.TieOutReport{Month: month, Year: year}
	report.Totals = zeroTieOutRow("TOTAL")
	for _, r := range results {
		row := domain.TieOutRow{
			Name:         r.DeveloperName,
			Capitalized:  r.CapitalizedAmount,
			Expensed:     r.ExpensedAmount,
			Total:        r.LoadedCost,
			TotalPayroll: grossByDev[r.DeveloperID],
		}
		row.Delta = row.Capitalized.Add(row.Expensed).Sub(row.Total)
		report.Developers = append(report.Developers, row)

		report.Totals.Capitalized = report.Totals.Capitalized.Add(row.Capitalized)
		report.Totals.Expensed = report.Totals.Expensed.Add(row.Expensed)
		report.Totals.Total = report.Totals.Total.Add(row.Total)
		report.Totals.TotalPayroll = report.Totals.TotalPayroll.Add(row.TotalPayroll)
		report.Totals.Delta = report.Totals.Delta.Add(row.Delta)
	}
	return report, nil
}

// AssetValueReport lists each capitalizable project's cost basis, accumulated
// amortization and net book value as of the given date.
func (s *reportingService) AssetValueReport(ctx context.Context, asOf time.Time) (*dto.ReportResponse, error) {
	rows, totalNBV, err := s.assetRows(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		Title:    "Capitalized Asset Value",
		Subtitle: fmt.Sprintf("Net book value as of %s", asOf.Format("January 2, 2006")),
		Rows:     rows,
		Total:    totalNBV,
	}, nil
}

// YTDAmortizationReport lists each in-service project's amortization recorded
// in the calendar year of asOf. The year-to-date figure is the schedule
// position at asOf minus the position at the end of the prior year, so life
// clamps and starting balances carry through without special cases.
func (s *reportingService) YTDAmortizationReport(ctx context.Context, asOf time.Time) (*dto.ReportResponse, error) {
	rows, total, err := s.ytdRows(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		Title:    "Year-to-Date Amortization",
		Subtitle: fmt.Sprintf("January 1 through %s", asOf.Format("January 2, 2006")),
		Rows:     rows,
		Total:    total,
	}, nil
}

// Dashboard aggregates the headline figures, the recent period chart series
// and the data-quality alerts into one payload.
func (s *reportingService) Dashboard(ctx context.Context, asOf time.Time) (*dto.DashboardResponse, error) {
	assetRows, totalAssetValue, err := s.assetRows(ctx, asOf)
	if err != nil {
		return nil, err
	}
	_, ytdTotal, err := s.ytdRows(ctx, asOf)
	if err != nil {
		return nil, err
	}

	activeDevs, err := s.developerRepo.ListActiveDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active developers: %w", err)
	}
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	chart, assetChart, err := s.chartSeries(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Summary: dto.DashboardSummary{
			TotalAssetValue:      totalAssetValue,
			YTDAmortization:      ytdTotal,
			ActiveDeveloperCount: len(activeDevs),
			TotalProjects:        len(projects),
		},
		TopProjects:    topProjectsByCost(projects, 5),
		ChartData:      chart,
		AssetChartData: assetChart,
		Alerts:         projectAlerts(projects, assetRows),
	}
	return resp, nil
}

func (s *reportingService) assetRows(ctx context.Context, asOf time.Time) ([]domain.AssetValueRow, decimal.Decimal, error) {
	projects, err := s.projectRepo.ListCapitalizableProjects(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load capitalizable projects: %w", err)
	}

	rows := make([]domain.AssetValueRow, 0, len(projects))
	total := decimal.Zero
	for _, p := range projects {
		if p.TotalCostBasis().IsZero() {
			continue
		}
		schedule := accounting.CalculateAmortization(
			p.AccumulatedCost, p.StartingBalance, p.StartingAmortization,
			p.AmortizationMonths, p.ServiceState(), asOf)
		rows = append(rows, domain.AssetValueRow{
			ProjectID:               p.ProjectID,
			Name:                    p.Name,
			Status:                  p.Status,
			TotalCost:               p.TotalCostBasis(),
			AccumulatedAmortization: schedule.TotalAmortization,
			NetBookValue:            schedule.NetBookValue,
			LaunchDate:              p.LaunchDate,
		})
		total = total.Add(schedule.NetBookValue)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].NetBookValue.GreaterThan(rows[j].NetBookValue) })
	return rows, total, nil
}

func (s *reportingService) ytdRows(ctx context.Context, asOf time.Time) ([]domain.YTDAmortizationRow, decimal.Decimal, error) {
	projects, err := s.projectRepo.ListAmortizableProjects(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load amortizable projects: %w", err)
	}

	priorYearEnd := time.Date(asOf.Year()-1, time.December, 31, 23, 59, 59, 0, time.UTC)

	rows := make([]domain.YTDAmortizationRow, 0, len(projects))
	total := decimal.Zero
	for _, p := range projects {
		state := p.ServiceState()
		if _, inService := state.InService(); !inService {
			continue
		}
		current := accounting.CalculateAmortization(
			p.AccumulatedCost, p.StartingBalance, p.StartingAmortization,
			p.AmortizationMonths, state, asOf)
		prior := accounting.CalculateAmortization(
			p.AccumulatedCost, p.StartingBalance, p.StartingAmortization,
			p.AmortizationMonths, state, priorYearEnd)

		ytd := current.TotalAmortization.Sub(prior.TotalAmortization)
		if !ytd.IsPositive() {
			continue
		}
		rows = append(rows, domain.YTDAmortizationRow{
			ProjectID:           p.ProjectID,
			Name:                p.Name,
			Status:              p.Status,
			TotalCost:           p.TotalCostBasis(),
			MonthlyAmortization: current.MonthlyAmortization,
			YTDAmount:           ytd,
			LaunchDate:          p.LaunchDate,
		})
		total = total.Add(ytd)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].YTDAmount.GreaterThan(rows[j].YTDAmount) })
	return rows, total, nil
}

// chartSeries builds the recent-history chart inputs from the stored period
// totals, oldest first.
func (s *reportingService) chartSeries(ctx context.Context) ([]dto.ChartPoint, []dto.AssetChartPoint, error) {
	periods, err := s.accountingRepo.ListPeriods(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load periods: %w", err)
	}
	if len(periods) > dashboardChartMonths {
		periods = periods[:dashboardChartMonths]
	}
	// ListPeriods is newest first; charts read left to right.
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Month < periods[j].Month
	})

	chart := make([]dto.ChartPoint, 0, len(periods))
	assetChart := make([]dto.AssetChartPoint, 0, len(periods))
	runningCap := decimal.Zero
	runningAmort := decimal.Zero
	for _, p := range periods {
		label := fmt.Sprintf("%s %d", time.Month(p.Month).String()[:3], p.Year)
		chart = append(chart, dto.ChartPoint{
			Label:        label,
			Capex:        p.TotalCapitalized,
			Opex:         p.TotalExpensed,
			Amortization: p.TotalAmortization,
		})
		runningCap = runningCap.Add(p.TotalCapitalized)
		runningAmort = runningAmort.Add(p.TotalAmortization)
		assetChart = append(assetChart, dto.AssetChartPoint{
			Label:       label,
			Capitalized: runningCap,
			Amortized:   runningAmort,
			NetAsset:    runningCap.Sub(runningAmort),
		})
	}
	return chart, assetChart, nil
}

func topProjectsByCost(projects []domain.Project, limit int) []dto.TopProject {
	sorted := make([]domain.Project, len(projects))
	copy(sorted, projects)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TotalCostBasis().GreaterThan(sorted[j].TotalCostBasis())
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	top := make([]dto.TopProject, 0, len(sorted))
	for _, p := range sorted {
		if p.TotalCostBasis().IsZero() {
			continue
		}
		top = append(top, dto.TopProject{
			ProjectID: p.ProjectID,
			Name:      p.Name,
			Cost:      p.TotalCostBasis(),
			Status:    string(p.Status),
		})
	}
	return top
}

// projectAlerts flags data problems an accountant has to resolve by hand:
// live projects missing a launch date, and launched assets that have fully
// amortized but still carry an active status.
func projectAlerts(projects []domain.Project, assetRows []domain.AssetValueRow) []dto.Alert {
	alerts := make([]dto.Alert, 0)
	for _, p := range projects {
		if p.Status == domain.StatusLive && p.LaunchDate == nil {
			alerts = append(alerts, dto.Alert{
				ProjectID: p.ProjectID,
				Name:      p.Name,
				Message:   "Project is LIVE but has no launch date; amortization cannot start",
			})
		}
	}
	for _, row := range assetRows {
		if row.NetBookValue.IsZero() && row.TotalCost.IsPositive() && row.Status == domain.StatusLive {
			alerts = append(alerts, dto.Alert{
				ProjectID: row.ProjectID,
				Name:      row.Name,
				Message:   "Asset is fully amortized; consider retiring the project",
			})
		}
	}
	return alerts
}

func zeroTieOutRow(name string) domain.TieOutRow {
	return domain.TieOutRow{
		Name:         name,
		Capitalized:  decimal.Zero,
		Expensed:     decimal.Zero,
		Total:        decimal.Zero,
		TotalPayroll: decimal.Zero,
		Delta:        decimal.Zero,
	}
}
