package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollUploadRow is one line of an uploaded payroll file. Rows are
// validated individually so one bad line does not sink the batch.
type PayrollUploadRow struct {
	Name                string           `json:"name"`
	Email               string           `json:"email" validate:"required,email"`
	MonthlySalary       *decimal.Decimal `json:"monthlySalary"`
	StockCompAllocation *decimal.Decimal `json:"stockCompAllocation"`
}

// PayrollUploadRequest is a payroll upload batch.
type PayrollUploadRequest struct {
	Data []PayrollUploadRow `json:"data" binding:"required,min=1"`
}

// UploadResult reports how many rows a batch operation applied.
type UploadResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// PayrollImportRef is one payroll batch column of the register.
type PayrollImportRef struct {
	ImportID string    `json:"id"`
	Label    string    `json:"label"`
	PayDate  time.Time `json:"payDate"`
	Year     int       `json:"year"`
}

// RegisterDeveloperRef is one developer row of the register.
type RegisterDeveloperRef struct {
	DeveloperID string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// PayrollRegisterResponse is the developer-by-import gross salary matrix.
type PayrollRegisterResponse struct {
	Developers     []RegisterDeveloperRef                `json:"developers"`
	PayrollImports []PayrollImportRef                    `json:"payrollImports"`
	SalaryMap      map[string]map[string]decimal.Decimal `json:"salaryMap"`
	ImportTotals   map[string]decimal.Decimal            `json:"importTotals"`
	DevTotals      map[string]decimal.Decimal            `json:"devTotals"`
	GrandTotal     decimal.Decimal                       `json:"grandTotal"`
	YearLabel      string                                `json:"yearLabel"`
}

// ConfigResponse is one global configuration row.
type ConfigResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// AdminUserResponse is one console user on the admin surface.
type AdminUserResponse struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminOverviewResponse is the admin surface payload.
type AdminOverviewResponse struct {
	Configs []ConfigResponse    `json:"configs"`
	Users   []AdminUserResponse `json:"users"`
}

// AdminUpdateRequest mutates either a config value or a user role.
type AdminUpdateRequest struct {
	Type  string `json:"type" binding:"required,oneof=config user_role"`
	Key   string `json:"key"`
	Value string `json:"value"`
	ID    string `json:"id"`
	Role  string `json:"role" binding:"omitempty,oneof=ADMIN VIEWER"`
}
