package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeveloperResponse is one developer with derived allocation stats.
type DeveloperResponse struct {
	DeveloperID         string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	TrackerUserID       string          `json:"trackerUserId"`
	Role                string          `json:"role"`
	IsActive            bool            `json:"isActive"`
	MonthlySalary       decimal.Decimal `json:"monthlySalary"`
	FringeBenefitRate   decimal.Decimal `json:"fringeBenefitRate"`
	StockCompAllocation decimal.Decimal `json:"stockCompAllocation"`
	LoadedCost          decimal.Decimal `json:"loadedCost"`
	TotalPoints         int             `json:"totalPoints"`
	CapPoints           int             `json:"capPoints"`
	ExpPoints           int             `json:"expPoints"`
	CapRatio            decimal.Decimal `json:"capRatio"`
	TicketCount         int             `json:"ticketCount"`
}

// UpdateDeveloperRequest carries admin edits to a developer's payroll
// fields. Pointer fields distinguish "leave unchanged" from zero values.
type UpdateDeveloperRequest struct {
	MonthlySalary       *decimal.Decimal `json:"monthlySalary"`
	FringeBenefitRate   *decimal.Decimal `json:"fringeBenefitRate"`
	StockCompAllocation *decimal.Decimal `json:"stockCompAllocation"`
	IsActive            *bool            `json:"isActive"`
}

// ProjectResponse is one project with derived cost and ticket stats.
type ProjectResponse struct {
	ProjectID            string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	EpicKey              string          `json:"epicKey"`
	Status               string          `json:"status"`
	IsCapitalizable      bool            `json:"isCapitalizable"`
	AmortizationMonths   int             `json:"amortizationMonths"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	AccumulatedCost      decimal.Decimal `json:"accumulatedCost"`
	StartingBalance      decimal.Decimal `json:"startingBalance"`
	StartingAmortization decimal.Decimal `json:"startingAmortization"`
	StartDate            time.Time       `json:"startDate"`
	LaunchDate           *time.Time      `json:"launchDate"`
	OverrideReason       string          `json:"overrideReason"`
	TicketCount          int             `json:"ticketCount"`
	EntryCount           int             `json:"entryCount"`
	StoryPoints          int             `json:"storyPoints"`
	BugPoints            int             `json:"bugPoints"`
}

// UpdateProjectRequest carries admin edits to a project's accounting
// treatment. LaunchDate uses RFC 3339 date form; an explicit empty string
// clears it (takes the asset out of service).
type UpdateProjectRequest struct {
	Status               *string          `json:"status" binding:"omitempty,oneof=PLANNING DEV LIVE RETIRED"`
	IsCapitalizable      *bool            `json:"isCapitalizable"`
	OverrideReason       *string          `json:"overrideReason"`
	StartingBalance      *decimal.Decimal `json:"startingBalance"`
	StartingAmortization *decimal.Decimal `json:"startingAmortization"`
	LaunchDate           *string          `json:"launchDate"`
	AmortizationMonths   *int             `json:"amortizationMonths" binding:"omitempty,gt=0"`
}

// TicketResponse is one ticket with assignee/project context and the total
// ledger dollars allocated against it.
type TicketResponse struct {
	ID             string           `json:"id"`
	TicketID       string           `json:"ticketId"`
	EpicKey        string           `json:"epicKey"`
	IssueType      string           `json:"issueType"`
	Summary        string           `json:"summary"`
	StoryPoints    int              `json:"storyPoints"`
	ResolutionDate *time.Time       `json:"resolutionDate"`
	FixVersion     string           `json:"fixVersion"`
	Assignee       AssigneeRef      `json:"assignee"`
	Project        TicketProjectRef `json:"project"`
	AllocatedCost  decimal.Decimal  `json:"allocatedCost"`
}

// AssigneeRef is a compact developer reference on a ticket.
type AssigneeRef struct {
	DeveloperID string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
}

// TicketProjectRef is a compact project reference on a ticket.
type TicketProjectRef struct {
	ProjectID       string `json:"id"`
	Name            string `json:"name"`
	EpicKey         string `json:"epicKey"`
	Status          string `json:"status"`
	IsCapitalizable bool   `json:"isCapitalizable"`
}
