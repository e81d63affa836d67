package domain

import "github.com/shopspring/decimal"

// PeriodStatus indicates whether an accounting period is still accepting
// regeneration runs.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is one calendar month of generated journal entries.
// Its three totals must always equal the sum of its entry amounts by type;
// they are rewritten wholesale on every generation run.
type AccountingPeriod struct {
	PeriodID          string          `json:"periodID"`
	Month             int             `json:"month"` // 1 = January .. 12 = December
	Year              int             `json:"year"`
	Status            PeriodStatus    `json:"status"`
	TotalCapitalized  decimal.Decimal `json:"totalCapitalized"`
	TotalExpensed     decimal.Decimal `json:"totalExpensed"`
	TotalAmortization decimal.Decimal `json:"totalAmortization"`
	AuditFields
}

// EntryType is the closed set of journal entry kinds the generator emits.
type EntryType string

const (
	EntryCapitalization EntryType = "CAPITALIZATION"
	EntryExpense        EntryType = "EXPENSE"
	EntryAmortization   EntryType = "AMORTIZATION"
)

// EntryAccounts fixes the ledger presentation of an entry type: which
// account is debited, which is credited, and whether ticket-level audit
// trails accompany the entry.
type EntryAccounts struct {
	DebitAccount  string
	CreditAccount string
	HasAuditTrail bool
}

// entryAccounts is the single mapping from entry type to account labels.
// These are presentation constants, not computed values.
var entryAccounts = map[EntryType]EntryAccounts{
	EntryCapitalization: {
		DebitAccount:  "WIP - Software Assets",
		CreditAccount: "R&D Salaries / Payroll Expense",
		HasAuditTrail: true,
	},
	EntryExpense: {
		DebitAccount:  "R&D Expense - Software",
		CreditAccount: "Accrued Payroll / Cash",
		HasAuditTrail: true,
	},
	EntryAmortization: {
		DebitAccount:  "Amortization Expense",
		CreditAccount: "Accumulated Amortization - Software",
		HasAuditTrail: false,
	},
}

// Accounts returns the fixed account mapping for the entry type. The second
// return is false for an unknown type, which indicates corrupt data.
func (t EntryType) Accounts() (EntryAccounts, bool) {
	a, ok := entryAccounts[t]
	return a, ok
}

// JournalEntry is one generated ledger record for a project in a period.
// Entries are regenerable artifacts: a generation run deletes and recreates
// the full set for its period, never patches them.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	EntryType     EntryType       `json:"entryType"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Amount        decimal.Decimal `json:"amount"` // Positive, two-decimal currency
	Description   string          `json:"description"`
	PeriodID      string          `json:"periodID"`
	ProjectID     string          `json:"projectID"`
	AuditFields
}

// AuditTrail ties a journal entry to one ticket and the developer who worked
// it, carrying the exact dollar fraction of the entry attributable to that
// ticket. The sum of a given entry's trail amounts reconciles to the entry
// amount, rounding aside.
type AuditTrail struct {
	TrailID         string          `json:"trailID"`
	JournalEntryID  string          `json:"journalEntryID"`
	TicketRef       string          `json:"ticketRef"` // Ticket.ID
	TicketID        string          `json:"ticketID"`  // Tracker key snapshot
	DeveloperName   string          `json:"developerName"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	AuditFields
}
