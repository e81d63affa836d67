package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectAllocation is one developer's point group within a period, keyed by
// project and treatment. A developer who resolved both capitalizable and
// non-capitalizable work on the same project produces two groups, so the
// capitalization and expense passes never mix points.
type ProjectAllocation struct {
	ProjectID       string          `json:"projectID"`
	ProjectName     string          `json:"projectName"`
	Points          int             `json:"points"`
	IsCapitalizable bool            `json:"isCapitalizable"`
	// Amount is the developer's loaded-cost share for capitalizable groups;
	// zero for expensed groups, whose dollars are computed by the generator
	// from the group's point fraction.
	Amount decimal.Decimal `json:"amount"`
}

// PeriodCostResult is one developer's full cost split for a period. The
// developer's entire loaded cost is allocated: capitalized plus expensed
// always equals loaded cost.
type PeriodCostResult struct {
	DeveloperID       string              `json:"developerID"`
	DeveloperName     string              `json:"developerName"`
	TotalPoints       int                 `json:"totalPoints"`
	CapPoints         int                 `json:"capPoints"`
	ExpPoints         int                 `json:"expPoints"`
	CapRatio          decimal.Decimal     `json:"capRatio"`
	LoadedCost        decimal.Decimal     `json:"loadedCost"`
	CapitalizedAmount decimal.Decimal     `json:"capitalizedAmount"`
	ExpensedAmount    decimal.Decimal     `json:"expensedAmount"`
	ProjectBreakdown  []ProjectAllocation `json:"projectBreakdown"`
}

// AmortizationSchedule is the straight-line amortization position of one
// asset as of a given date.
type AmortizationSchedule struct {
	MonthlyAmortization decimal.Decimal `json:"monthlyAmortization"`
	TotalAmortization   decimal.Decimal `json:"totalAmortization"`
	NetBookValue        decimal.Decimal `json:"netBookValue"`
	MonthsElapsed       int             `json:"monthsElapsed"`
}

// AssetValueRow is one project line of the asset-value report.
type AssetValueRow struct {
	ProjectID               string          `json:"id"`
	Name                    string          `json:"name"`
	Status                  ProjectStatus   `json:"status"`
	TotalCost               decimal.Decimal `json:"totalCost"`
	AccumulatedAmortization decimal.Decimal `json:"accumulatedAmortization"`
	NetBookValue            decimal.Decimal `json:"netBookValue"`
	LaunchDate              *time.Time      `json:"launchDate"`
}

// YTDAmortizationRow is one project line of the year-to-date amortization
// report.
type YTDAmortizationRow struct {
	ProjectID           string          `json:"id"`
	Name                string          `json:"name"`
	Status              ProjectStatus   `json:"status"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	MonthlyAmortization decimal.Decimal `json:"monthlyAmortization"`
	YTDAmount           decimal.Decimal `json:"ytdAmount"`
	LaunchDate          *time.Time      `json:"launchDate"`
}

// TieOutRow compares one developer's allocated split against their loaded
// cost and any externally recorded payroll for the period. Delta is zero by
// construction; a nonzero delta signals a computation or data bug.
type TieOutRow struct {
	Name         string          `json:"name"`
	Capitalized  decimal.Decimal `json:"capitalized"`
	Expensed     decimal.Decimal `json:"expensed"`
	Total        decimal.Decimal `json:"total"`
	TotalPayroll decimal.Decimal `json:"totalPayroll"`
	Delta        decimal.Decimal `json:"delta"`
}

// TieOutReport is the payroll reconciliation for one period.
type TieOutReport struct {
	Developers []TieOutRow `json:"developers"`
	Totals     TieOutRow   `json:"totals"`
	Month      int         `json:"month"`
	Year       int         `json:"year"`
}
