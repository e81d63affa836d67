package dto

import (
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateEntriesRequest triggers a journal entry generation run for one period.
type GenerateEntriesRequest struct {
	Month int `json:"month" binding:"required,gte=1,lte=12"`
	Year  int `json:"year" binding:"required,gt=0"`
}

// GenerationTotals is what a generation run reports back to the operator.
type GenerationTotals struct {
	Message           string          `json:"message"`
	TotalCapitalized  decimal.Decimal `json:"totalCapitalized"`
	TotalExpensed     decimal.Decimal `json:"totalExpensed"`
	TotalAmortization decimal.Decimal `json:"totalAmortization"`
}

// EntrySummary is one journal entry within a period listing.
type EntrySummary struct {
	EntryID       string          `json:"id"`
	EntryType     string          `json:"entryType"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ProjectID     string          `json:"projectID"`
	ProjectName   string          `json:"projectName"`
}

// PeriodResponse is one accounting period with its generated entries.
type PeriodResponse struct {
	PeriodID          string          `json:"id"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	Status            string          `json:"status"`
	TotalCapitalized  decimal.Decimal `json:"totalCapitalized"`
	TotalExpensed     decimal.Decimal `json:"totalExpensed"`
	TotalAmortization decimal.Decimal `json:"totalAmortization"`
	JournalEntries    []EntrySummary  `json:"journalEntries"`
}

// AuditTrailDetail is one ticket-level allocation line of an entry.
type AuditTrailDetail struct {
	TrailID         string          `json:"id"`
	TicketID        string          `json:"ticketId"`
	TicketSummary   string          `json:"ticketSummary"`
	IssueType       string          `json:"issueType"`
	StoryPoints     int             `json:"storyPoints"`
	DeveloperName   string          `json:"developerName"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
}

// DeveloperRollup aggregates an entry's audit trails by developer.
type DeveloperRollup struct {
	Name        string          `json:"name"`
	TicketCount int             `json:"ticketCount"`
	TotalPoints int             `json:"totalPoints"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// AmortizationDetails is the recomputed schedule attached to an
// AMORTIZATION entry's audit view.
type AmortizationDetails struct {
	TotalCostBasis       decimal.Decimal `json:"totalCostBasis"`
	AccumulatedCost      decimal.Decimal `json:"accumulatedCost"`
	StartingBalance      decimal.Decimal `json:"startingBalance"`
	StartingAmortization decimal.Decimal `json:"startingAmortization"`
	UsefulLifeMonths     int             `json:"usefulLifeMonths"`
	MonthlyRate          decimal.Decimal `json:"monthlyRate"`
	MonthsElapsed        int             `json:"monthsElapsed"`
	TotalAmortization    decimal.Decimal `json:"totalAmortization"`
	NetBookValue         decimal.Decimal `json:"netBookValue"`
	LaunchDate           *time.Time      `json:"launchDate"`
}

// EntryAuditResponse is the full audit view of one journal entry.
type EntryAuditResponse struct {
	EntryID             string               `json:"id"`
	EntryType           string               `json:"entryType"`
	DebitAccount        string               `json:"debitAccount"`
	CreditAccount       string               `json:"creditAccount"`
	Amount              decimal.Decimal      `json:"amount"`
	Description         string               `json:"description"`
	Project             ProjectRef           `json:"project"`
	Period              PeriodRef            `json:"period"`
	AuditTrails         []AuditTrailDetail   `json:"auditTrails"`
	DeveloperSummary    []DeveloperRollup    `json:"developerSummary,omitempty"`
	AmortizationDetails *AmortizationDetails `json:"amortizationDetails,omitempty"`
}

// ProjectRef is a compact project reference inside responses.
type ProjectRef struct {
	ProjectID string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// PeriodRef is a compact period reference inside responses.
type PeriodRef struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ReportResponse is the generic shell for the slug reports.
type ReportResponse struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Rows     any             `json:"rows"`
	Total    decimal.Decimal `json:"total"`
}

// TieOutResponse mirrors domain.TieOutReport for the wire.
type TieOutResponse = domain.TieOutReport
