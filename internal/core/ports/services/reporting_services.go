package services

import (
	"context"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/nocap/captrack_backend/internal/dto"
)

// ReportingSvcFacade serves reconciliation and asset reports. All of its
// operations are pure reads or recomputations and are safe to retry.
type ReportingSvcFacade interface {
	// PayrollTieOut recomputes the period allocation fresh and compares
	// each developer's capitalized+expensed against their loaded cost and
	// any externally recorded payroll. Missing payroll imports are the
	// expected soft case, not an error.
	PayrollTieOut(ctx context.Context, month, year int) (*domain.TieOutReport, error)

	// AssetValueReport returns per-project net book value as of now.
	AssetValueReport(ctx context.Context, asOf time.Time) (*dto.ReportResponse, error)

	// YTDAmortizationReport returns per-project current-year amortization.
	YTDAmortizationReport(ctx context.Context, asOf time.Time) (*dto.ReportResponse, error)

	// Dashboard aggregates the headline figures, chart series and alerts.
	Dashboard(ctx context.Context, asOf time.Time) (*dto.DashboardResponse, error)
}
