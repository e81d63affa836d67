package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollImport is one uploaded payroll batch (one pay run).
type PayrollImport struct {
	ImportID string    `json:"importID"`
	Label    string    `json:"label"`
	PayDate  time.Time `json:"payDate"`
	Year     int       `json:"year"`
	AuditFields
}

// PayrollEntry is one developer's gross salary within an import. The
// tie-out report compares these externally recorded figures against the
// allocator's internally computed loaded costs.
type PayrollEntry struct {
	EntryID     string          `json:"entryID"`
	ImportID    string          `json:"importID"`
	DeveloperID string          `json:"developerID"`
	GrossSalary decimal.Decimal `json:"grossSalary"`
	AuditFields
}
