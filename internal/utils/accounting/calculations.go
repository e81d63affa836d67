package accounting

import (
	"sort"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodWindow returns the inclusive [first instant, last second] bounds of
// the given calendar month in UTC. A ticket with a resolution date outside
// this window is excluded from the period entirely.
func PeriodWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}

// MidMonthAnchor returns the 15th of the given month. Entry generation
// computes amortization as of this fixed anchor so results do not depend on
// what day of the month the run happens.
func MidMonthAnchor(month, year int) time.Time {
	return time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
}

// CalculateAmortization computes the straight-line amortization position of
// one capitalized asset as of a date.
//
// An asset not yet placed in service is a valid steady state: zero monthly
// amortization, the opening amortization balance carried as-is, and net book
// value equal to the full cost basis. Once in service, amortization starts
// the first full calendar month after launch, the as-of month counts when it
// is on or past that start, elapsed months are capped at the useful life,
// and net book value never goes negative.
//
// amortizationMonths must be positive once the asset is in service; callers
// enforce that before calling.
func CalculateAmortization(
	accumulatedCost, startingBalance, startingAmortization decimal.Decimal,
	amortizationMonths int,
	state domain.ServiceState,
	asOf time.Time,
) domain.AmortizationSchedule {
	totalCost := accumulatedCost.Add(startingBalance)

	launch, inService := state.InService()
	if !inService {
		return domain.AmortizationSchedule{
			MonthlyAmortization: decimal.Zero,
			TotalAmortization:   startingAmortization,
			NetBookValue:        totalCost,
			MonthsElapsed:       0,
		}
	}

	monthly := totalCost.Div(decimal.NewFromInt(int64(amortizationMonths)))

	// Month-after-launch convention: a launch on any day of month M makes
	// M+1 the first month of amortization.
	amortStart := time.Date(launch.Year(), launch.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	elapsed := (asOf.Year()-amortStart.Year())*12 + int(asOf.Month()-amortStart.Month()) + 1
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > amortizationMonths {
		elapsed = amortizationMonths
	}

	total := startingAmortization.Add(monthly.Mul(decimal.NewFromInt(int64(elapsed))))
	nbv := totalCost.Sub(total)
	if nbv.IsNegative() {
		nbv = decimal.Zero
	}

	return domain.AmortizationSchedule{
		MonthlyAmortization: monthly,
		TotalAmortization:   total,
		NetBookValue:        nbv,
		MonthsElapsed:       elapsed,
	}
}

// AllocateCosts splits each developer's loaded cost for the period across
// accounting treatments in proportion to resolved story points. Developers
// with no resolved tickets, or whose tickets sum to zero points, are
// excluded. The returned results are ordered by developer name for
// deterministic output.
//
// Project breakdown groups are keyed by (project, treatment): a developer's
// capitalizable and expensed work on the same project form two separate
// groups. Capitalizable groups carry the developer's loaded-cost share for
// that project; expensed groups carry zero here, and the entry generator
// computes expense dollars from the group's point fraction.
func AllocateCosts(snap domain.PeriodSnapshot) []domain.PeriodCostResult {
	byDev := snap.TicketsByDeveloper()

	results := make([]domain.PeriodCostResult, 0, len(snap.Developers))
	for _, dev := range snap.Developers {
		tickets := byDev[dev.DeveloperID]
		if len(tickets) == 0 {
			continue
		}

		type groupKey struct {
			projectID     string
			capitalizable bool
		}
		groups := make(map[groupKey]*domain.ProjectAllocation)

		totalPoints := 0
		capPoints := 0
		for _, pt := range tickets {
			totalPoints += pt.Ticket.StoryPoints
			if pt.Capitalizable {
				capPoints += pt.Ticket.StoryPoints
			}

			key := groupKey{projectID: pt.Ticket.ProjectID, capitalizable: pt.Capitalizable}
			g, ok := groups[key]
			if !ok {
				g = &domain.ProjectAllocation{
					ProjectID:       pt.Ticket.ProjectID,
					ProjectName:     pt.Project.Name,
					IsCapitalizable: pt.Capitalizable,
				}
				groups[key] = g
			}
			g.Points += pt.Ticket.StoryPoints
		}

		if totalPoints == 0 {
			continue
		}

		total := decimal.NewFromInt(int64(totalPoints))
		loadedCost := dev.LoadedCost(snap.DefaultFringeRate)
		capRatio := decimal.NewFromInt(int64(capPoints)).Div(total)
		capitalized := loadedCost.Mul(decimal.NewFromInt(int64(capPoints))).Div(total)
		// The complement, so capitalized + expensed is exactly the loaded cost.
		expensed := loadedCost.Sub(capitalized)

		breakdown := make([]domain.ProjectAllocation, 0, len(groups))
		for _, g := range groups {
			if g.IsCapitalizable {
				g.Amount = loadedCost.Mul(decimal.NewFromInt(int64(g.Points))).Div(total)
			}
			breakdown = append(breakdown, *g)
		}
		sort.Slice(breakdown, func(i, j int) bool {
			if breakdown[i].ProjectName != breakdown[j].ProjectName {
				return breakdown[i].ProjectName < breakdown[j].ProjectName
			}
			return breakdown[i].IsCapitalizable && !breakdown[j].IsCapitalizable
		})

		results = append(results, domain.PeriodCostResult{
			DeveloperID:       dev.DeveloperID,
			DeveloperName:     dev.Name,
			TotalPoints:       totalPoints,
			CapPoints:         capPoints,
			ExpPoints:         totalPoints - capPoints,
			CapRatio:          capRatio,
			LoadedCost:        loadedCost,
			CapitalizedAmount: capitalized,
			ExpensedAmount:    expensed,
			ProjectBreakdown:  breakdown,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DeveloperName != results[j].DeveloperName {
			return results[i].DeveloperName < results[j].DeveloperName
		}
		return results[i].DeveloperID < results[j].DeveloperID
	})
	return results
}
