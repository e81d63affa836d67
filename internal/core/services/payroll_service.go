package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// payrollService ingests payroll batches and serves the register matrix.
type payrollService struct {
	BaseService
	payrollRepo   portsrepo.PayrollRepositoryFacade
	developerRepo portsrepo.DeveloperRepositoryFacade
	validate      *validator.Validate
}

// NewPayrollService creates the payroll service.
func NewPayrollService(payrollRepo portsrepo.PayrollRepositoryFacade, developerRepo portsrepo.DeveloperRepositoryFacade) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:   payrollRepo,
		developerRepo: developerRepo,
		validate:      validator.New(),
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// Register builds the developer-by-import gross salary matrix with row,
// column and grand totals.
func (s *payrollService) Register(ctx context.Context) (*dto.PayrollRegisterResponse, error) {
	devs, err := s.developerRepo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}
	imports, err := s.payrollRepo.ListImports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll imports: %w", err)
	}
	importIDs := make([]string, 0, len(imports))
	for _, imp := range imports {
		importIDs = append(importIDs, imp.ImportID)
	}
	entriesByImport, err := s.payrollRepo.ListEntriesByImports(ctx, importIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}

	resp := &dto.PayrollRegisterResponse{
		SalaryMap:    make(map[string]map[string]decimal.Decimal, len(devs)),
		ImportTotals: make(map[string]decimal.Decimal, len(imports)),
		DevTotals:    make(map[string]decimal.Decimal, len(devs)),
		GrandTotal:   decimal.Zero,
	}
	for _, d := range devs {
		resp.Developers = append(resp.Developers, dto.RegisterDeveloperRef{
			DeveloperID: d.DeveloperID,
			Name:        d.Name,
			Email:       d.Email,
			Role:        string(d.Role),
		})
		resp.SalaryMap[d.DeveloperID] = make(map[string]decimal.Decimal)
		resp.DevTotals[d.DeveloperID] = decimal.Zero
	}
	minYear, maxYear := 0, 0
	for _, imp := range imports {
		resp.PayrollImports = append(resp.PayrollImports, dto.PayrollImportRef{
			ImportID: imp.ImportID,
			Label:    imp.Label,
			PayDate:  imp.PayDate,
			Year:     imp.Year,
		})
		resp.ImportTotals[imp.ImportID] = decimal.Zero
		if minYear == 0 || imp.Year < minYear {
			minYear = imp.Year
		}
		if imp.Year > maxYear {
			maxYear = imp.Year
		}
		for _, e := range entriesByImport[imp.ImportID] {
			if _, known := resp.SalaryMap[e.DeveloperID]; !known {
				continue
			}
			resp.SalaryMap[e.DeveloperID][imp.ImportID] = e.GrossSalary
			resp.ImportTotals[imp.ImportID] = resp.ImportTotals[imp.ImportID].Add(e.GrossSalary)
			resp.DevTotals[e.DeveloperID] = resp.DevTotals[e.DeveloperID].Add(e.GrossSalary)
			resp.GrandTotal = resp.GrandTotal.Add(e.GrossSalary)
		}
	}
	switch {
	case minYear == 0:
		resp.YearLabel = ""
	case minYear == maxYear:
		resp.YearLabel = fmt.Sprintf("%d", minYear)
	default:
		resp.YearLabel = fmt.Sprintf("%d-%d", minYear, maxYear)
	}
	return resp, nil
}

// Upload applies a payroll batch: each valid row with a known email updates
// that developer's salary fields, and the applied rows are recorded as a
// payroll import for later reconciliation. Invalid rows and unknown emails
// are skipped with a warning so one bad line cannot sink the batch.
func (s *payrollService) Upload(ctx context.Context, req dto.PayrollUploadRequest, actorID string) (*dto.UploadResult, error) {
	now := time.Now().UTC()
	imp := domain.PayrollImport{
		ImportID: uuid.NewString(),
		Label:    fmt.Sprintf("Upload %s", now.Format("Jan 2, 2006")),
		PayDate:  now,
		Year:     now.Year(),
	}

	var entries []domain.PayrollEntry
	applied := 0
	for i, row := range req.Data {
		if err := s.validate.Struct(row); err != nil {
			s.LogWarn(ctx, "Skipping invalid payroll row",
				slog.Int("row", i), slog.String("reason", err.Error()))
			continue
		}
		dev, err := s.developerRepo.FindDeveloperByEmail(ctx, row.Email)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogWarn(ctx, "Skipping payroll row for unknown email",
					slog.Int("row", i), slog.String("email", row.Email))
				continue
			}
			return nil, fmt.Errorf("failed to look up developer %s: %w", row.Email, err)
		}

		if row.MonthlySalary != nil && !row.MonthlySalary.IsNegative() {
			dev.MonthlySalary = *row.MonthlySalary
		}
		if row.StockCompAllocation != nil && !row.StockCompAllocation.IsNegative() {
			dev.StockCompAllocation = *row.StockCompAllocation
		}
		dev.LastUpdatedAt = now
		dev.LastUpdatedBy = actorID
		if err := s.developerRepo.UpdateDeveloper(ctx, *dev); err != nil {
			return nil, fmt.Errorf("failed to update developer %s: %w", dev.DeveloperID, err)
		}

		entries = append(entries, domain.PayrollEntry{
			EntryID:     uuid.NewString(),
			ImportID:    imp.ImportID,
			DeveloperID: dev.DeveloperID,
			GrossSalary: dev.MonthlySalary,
		})
		applied++
	}

	if len(entries) > 0 {
		if err := s.payrollRepo.CreateImport(ctx, imp, entries); err != nil {
			return nil, fmt.Errorf("failed to record payroll import: %w", err)
		}
	}

	s.LogInfo(ctx, "Payroll batch applied",
		slog.Int("rows", len(req.Data)), slog.Int("applied", applied), slog.String("actor", actorID))
	return &dto.UploadResult{
		Message: fmt.Sprintf("Applied %d of %d payroll rows", applied, len(req.Data)),
		Count:   applied,
	}, nil
}
