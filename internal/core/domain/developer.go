package domain

import "github.com/shopspring/decimal"

// DeveloperRole classifies what kind of work a developer is hired for.
type DeveloperRole string

const (
	RoleEngineering DeveloperRole = "ENG"
	RoleProduct     DeveloperRole = "PRODUCT"
	RoleDesign      DeveloperRole = "DESIGN"
	RoleQA          DeveloperRole = "QA"
)

// Developer is a payroll-bearing engineer tracked against tickets.
// Developers are never deleted, only deactivated, so historical periods
// can always be regenerated against the people who worked them.
type Developer struct {
	DeveloperID         string          `json:"developerID"`
	Name                string          `json:"name"`
	Email               string          `json:"email"` // Unique
	TrackerUserID       string          `json:"trackerUserID"`
	Role                DeveloperRole   `json:"role"`
	MonthlySalary       decimal.Decimal `json:"monthlySalary"`
	FringeBenefitRate   decimal.Decimal `json:"fringeBenefitRate"` // Zero means "use the global default"
	StockCompAllocation decimal.Decimal `json:"stockCompAllocation"`
	IsActive            bool            `json:"isActive"`
	AuditFields
}

// LoadedCost returns the fully-burdened monthly cost of the developer:
// salary plus fringe benefits plus stock compensation. defaultFringeRate is
// applied when the developer carries no override of their own.
func (d Developer) LoadedCost(defaultFringeRate decimal.Decimal) decimal.Decimal {
	fringe := d.FringeBenefitRate
	if fringe.IsZero() {
		fringe = defaultFringeRate
	}
	return d.MonthlySalary.
		Add(d.MonthlySalary.Mul(fringe)).
		Add(d.StockCompAllocation)
}
