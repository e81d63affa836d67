package accounting_test

import (
	"testing"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPeriodWindow(t *testing.T) {
	from, to := accounting.PeriodWindow(2, 2024)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	// 2024 is a leap year, so the window runs through Feb 29.
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), to)

	from, to = accounting.PeriodWindow(12, 2025)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), to)
}

func TestMidMonthAnchor(t *testing.T) {
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), accounting.MidMonthAnchor(3, 2025))
}

func TestCalculateAmortization_NotInService(t *testing.T) {
	schedule := accounting.CalculateAmortization(
		d("90000"), d("0"), d("1000"), 36, domain.NotInService(), time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, schedule.MonthlyAmortization.IsZero())
	assert.True(t, schedule.TotalAmortization.Equal(d("1000")))
	assert.True(t, schedule.NetBookValue.Equal(d("90000")))
	assert.Equal(t, 0, schedule.MonthsElapsed)
}

func TestCalculateAmortization_StartsMonthAfterLaunch(t *testing.T) {
	launch := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	schedule := accounting.CalculateAmortization(
		d("90000"), d("0"), d("0"), 36, domain.InService(launch), asOf)

	// Amortization runs Feb and Mar: two months at 90000/36.
	assert.Equal(t, 2, schedule.MonthsElapsed)
	assert.True(t, schedule.MonthlyAmortization.Equal(d("2500")), "monthly was %s", schedule.MonthlyAmortization)
	assert.True(t, schedule.TotalAmortization.Equal(d("5000")))
	assert.True(t, schedule.NetBookValue.Equal(d("85000")))
}

func TestCalculateAmortization_LaunchMonthItselfDoesNotCount(t *testing.T) {
	launch := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	schedule := accounting.CalculateAmortization(
		d("36000"), d("0"), d("0"), 36, domain.InService(launch), asOf)

	assert.Equal(t, 0, schedule.MonthsElapsed)
	assert.True(t, schedule.TotalAmortization.IsZero())
	assert.True(t, schedule.NetBookValue.Equal(d("36000")))
}

func TestCalculateAmortization_ClampsAtUsefulLife(t *testing.T) {
	launch := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	schedule := accounting.CalculateAmortization(
		d("36000"), d("0"), d("0"), 36, domain.InService(launch), asOf)

	assert.Equal(t, 36, schedule.MonthsElapsed)
	assert.True(t, schedule.TotalAmortization.Equal(d("36000")))
	assert.True(t, schedule.NetBookValue.IsZero())
}

func TestCalculateAmortization_NetBookValueNeverNegative(t *testing.T) {
	launch := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Opening amortization pushes the total past the cost basis.
	schedule := accounting.CalculateAmortization(
		d("36000"), d("0"), d("5000"), 36, domain.InService(launch), asOf)

	assert.True(t, schedule.NetBookValue.IsZero())
}

func TestCalculateAmortization_StartingBalanceInCostBasis(t *testing.T) {
	launch := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)

	schedule := accounting.CalculateAmortization(
		d("60000"), d("12000"), d("0"), 36, domain.InService(launch), asOf)

	assert.True(t, schedule.MonthlyAmortization.Equal(d("2000")))
	assert.Equal(t, 1, schedule.MonthsElapsed)
	assert.True(t, schedule.NetBookValue.Equal(d("70000")))
}

func snapshotWith(devs []domain.Developer, tickets []domain.PeriodTicket) domain.PeriodSnapshot {
	from, to := accounting.PeriodWindow(1, 2025)
	return domain.PeriodSnapshot{
		Month:             1,
		Year:              2025,
		From:              from,
		To:                to,
		Developers:        devs,
		Tickets:           tickets,
		DefaultFringeRate: d("0.25"),
	}
}

func periodTicket(id, projectID string, dev domain.Developer, project domain.Project, issueType domain.IssueType, points int) domain.PeriodTicket {
	resolved := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{
		ID:             id,
		TicketID:       "ENG-" + id,
		IssueType:      issueType,
		StoryPoints:    points,
		ResolutionDate: &resolved,
		AssigneeID:     dev.DeveloperID,
		ProjectID:      projectID,
	}
	return domain.PeriodTicket{
		Ticket:        ticket,
		Project:       project,
		Capitalizable: ticket.IsCapitalizable(project),
	}
}

func TestAllocateCosts_SplitsSameProjectByTreatment(t *testing.T) {
	dev := domain.Developer{
		DeveloperID:   "dev-1",
		Name:          "Dana",
		MonthlySalary: d("10000"),
	}
	project := domain.Project{
		ProjectID:       "proj-1",
		Name:            "Billing Engine",
		Status:          domain.StatusDev,
		IsCapitalizable: true,
	}
	snap := snapshotWith(
		[]domain.Developer{dev},
		[]domain.PeriodTicket{
			periodTicket("t1", "proj-1", dev, project, domain.IssueStory, 8),
			periodTicket("t2", "proj-1", dev, project, domain.IssueBug, 2),
		},
	)

	results := accounting.AllocateCosts(snap)
	require.Len(t, results, 1)
	r := results[0]

	// Loaded cost: 10000 * 1.25 = 12500, split 8:2 between treatments.
	assert.True(t, r.LoadedCost.Equal(d("12500")))
	assert.Equal(t, 10, r.TotalPoints)
	assert.Equal(t, 8, r.CapPoints)
	assert.Equal(t, 2, r.ExpPoints)
	assert.True(t, r.CapitalizedAmount.Equal(d("10000")), "capitalized was %s", r.CapitalizedAmount)
	assert.True(t, r.ExpensedAmount.Equal(d("2500")), "expensed was %s", r.ExpensedAmount)

	// Same project splits into a capitalizable and a non-capitalizable group.
	require.Len(t, r.ProjectBreakdown, 2)
	assert.True(t, r.ProjectBreakdown[0].IsCapitalizable)
	assert.Equal(t, 8, r.ProjectBreakdown[0].Points)
	assert.True(t, r.ProjectBreakdown[0].Amount.Equal(d("10000")))
	assert.False(t, r.ProjectBreakdown[1].IsCapitalizable)
	assert.Equal(t, 2, r.ProjectBreakdown[1].Points)
}

func TestAllocateCosts_NonDevProjectIsExpensed(t *testing.T) {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: d("8000")}
	liveProject := domain.Project{
		ProjectID:       "proj-live",
		Name:            "Shipped Thing",
		Status:          domain.StatusLive,
		IsCapitalizable: true,
	}
	snap := snapshotWith(
		[]domain.Developer{dev},
		[]domain.PeriodTicket{
			periodTicket("t1", "proj-live", dev, liveProject, domain.IssueStory, 5),
		},
	)

	results := accounting.AllocateCosts(snap)
	require.Len(t, results, 1)

	// STORY points on a LIVE project expense in full.
	assert.True(t, results[0].CapitalizedAmount.IsZero())
	assert.True(t, results[0].ExpensedAmount.Equal(results[0].LoadedCost))
}

func TestAllocateCosts_FullAllocationAcrossDevelopers(t *testing.T) {
	devA := domain.Developer{DeveloperID: "dev-a", Name: "Avery", MonthlySalary: d("9000"), FringeBenefitRate: d("0.3")}
	devB := domain.Developer{DeveloperID: "dev-b", Name: "Blake", MonthlySalary: d("11000"), StockCompAllocation: d("1500")}
	capProject := domain.Project{ProjectID: "p1", Name: "Alpha", Status: domain.StatusDev, IsCapitalizable: true}
	opexProject := domain.Project{ProjectID: "p2", Name: "Beta", Status: domain.StatusDev, IsCapitalizable: false}

	snap := snapshotWith(
		[]domain.Developer{devA, devB},
		[]domain.PeriodTicket{
			periodTicket("t1", "p1", devA, capProject, domain.IssueStory, 3),
			periodTicket("t2", "p2", devA, opexProject, domain.IssueStory, 4),
			periodTicket("t3", "p1", devB, capProject, domain.IssueStory, 7),
			periodTicket("t4", "p1", devB, capProject, domain.IssueTask, 1),
		},
	)

	results := accounting.AllocateCosts(snap)
	require.Len(t, results, 2)

	// Ordered by developer name.
	assert.Equal(t, "Avery", results[0].DeveloperName)
	assert.Equal(t, "Blake", results[1].DeveloperName)

	for _, r := range results {
		assert.True(t, r.CapitalizedAmount.Add(r.ExpensedAmount).Equal(r.LoadedCost),
			"developer %s: %s + %s != %s", r.DeveloperName, r.CapitalizedAmount, r.ExpensedAmount, r.LoadedCost)

		points := 0
		for _, g := range r.ProjectBreakdown {
			points += g.Points
		}
		assert.Equal(t, r.TotalPoints, points)
	}

	// Avery carries a personal fringe override.
	assert.True(t, results[0].LoadedCost.Equal(d("11700")))
	// Blake uses the default rate plus stock comp: 11000*1.25 + 1500.
	assert.True(t, results[1].LoadedCost.Equal(d("15250")))
}

func TestAllocateCosts_SkipsDevelopersWithoutPoints(t *testing.T) {
	worked := domain.Developer{DeveloperID: "dev-a", Name: "Avery", MonthlySalary: d("9000")}
	idle := domain.Developer{DeveloperID: "dev-b", Name: "Blake", MonthlySalary: d("9000")}
	zeroPoints := domain.Developer{DeveloperID: "dev-c", Name: "Casey", MonthlySalary: d("9000")}
	project := domain.Project{ProjectID: "p1", Name: "Alpha", Status: domain.StatusDev, IsCapitalizable: true}

	snap := snapshotWith(
		[]domain.Developer{worked, idle, zeroPoints},
		[]domain.PeriodTicket{
			periodTicket("t1", "p1", worked, project, domain.IssueStory, 5),
			periodTicket("t2", "p1", zeroPoints, project, domain.IssueStory, 0),
		},
	)

	results := accounting.AllocateCosts(snap)
	require.Len(t, results, 1)
	assert.Equal(t, "Avery", results[0].DeveloperName)
}
