package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus tracks where a project sits in its capitalization lifecycle.
// Only DEV work is eligible for capitalization; LIVE triggers amortization.
type ProjectStatus string

const (
	StatusPlanning ProjectStatus = "PLANNING"
	StatusDev      ProjectStatus = "DEV"
	StatusLive     ProjectStatus = "LIVE"
	StatusRetired  ProjectStatus = "RETIRED"
)

// Project is a software initiative whose development cost may be capitalized
// as an asset and amortized over its useful life.
type Project struct {
	ProjectID       string          `json:"projectID"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	EpicKey         string          `json:"epicKey"` // Unique external tracker key
	Status          ProjectStatus   `json:"status"`
	IsCapitalizable bool            `json:"isCapitalizable"`
	StartDate       time.Time       `json:"startDate"`
	LaunchDate      *time.Time      `json:"launchDate"` // Nil until placed in service
	// AmortizationMonths is the asset's useful life. Must be positive; a
	// non-positive value on a live project fails entry generation outright.
	AmortizationMonths int `json:"amortizationMonths"`
	// AccumulatedCost is the all-time sum of capitalization journal entries
	// for this project. It is derived from the ledger on every generation
	// run, never incremented in place, so regenerating a period cannot
	// double-count it.
	AccumulatedCost      decimal.Decimal `json:"accumulatedCost"`
	StartingBalance      decimal.Decimal `json:"startingBalance"`      // Opening cost basis for pre-existing assets
	StartingAmortization decimal.Decimal `json:"startingAmortization"` // Opening accumulated amortization
	OverrideReason       string          `json:"overrideReason"`       // Justification for a manual status override
	AuditFields
}

// TotalCostBasis is the project's full cost basis: ledger-accumulated cost
// plus any manually entered opening balance.
func (p Project) TotalCostBasis() decimal.Decimal {
	return p.AccumulatedCost.Add(p.StartingBalance)
}

// ServiceState is the explicit two-variant asset lifecycle: an asset is
// either not yet placed in service, or in service as of a launch date.
type ServiceState struct {
	inService bool
	launch    time.Time
}

// NotInService is the state of an asset that has no launch date yet.
func NotInService() ServiceState { return ServiceState{} }

// InService is the state of an asset placed in service on the given date.
func InService(launch time.Time) ServiceState {
	return ServiceState{inService: true, launch: launch}
}

// InService reports whether the asset has been placed in service, and if so
// on what date.
func (s ServiceState) InService() (time.Time, bool) { return s.launch, s.inService }

// ServiceState derives the lifecycle variant from the nullable launch date.
func (p Project) ServiceState() ServiceState {
	if p.LaunchDate == nil {
		return NotInService()
	}
	return InService(*p.LaunchDate)
}
