package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/nocap/captrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// developerService manages the roster and decorates it with the current
// month's allocation stats.
type developerService struct {
	BaseService
	developerRepo portsrepo.DeveloperRepositoryFacade
	allocation    portssvc.AllocationSvcFacade
}

// NewDeveloperService creates the developer roster service.
func NewDeveloperService(developerRepo portsrepo.DeveloperRepositoryFacade, allocation portssvc.AllocationSvcFacade) portssvc.DeveloperSvcFacade {
	return &developerService{developerRepo: developerRepo, allocation: allocation}
}

var _ portssvc.DeveloperSvcFacade = (*developerService)(nil)

// developerStats is the current-month slice of one developer's allocation.
type developerStats struct {
	totalPoints int
	capPoints   int
	expPoints   int
	capRatio    decimal.Decimal
	ticketCount int
}

// ListDevelopers returns the full roster, each row joined with the current
// month's recomputed allocation stats.
func (s *developerService) ListDevelopers(ctx context.Context) ([]dto.DeveloperResponse, error) {
	devs, err := s.developerRepo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list developers: %w", err)
	}

	stats, fringe, err := s.currentMonthStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DeveloperResponse, 0, len(devs))
	for _, d := range devs {
		out = append(out, developerResponse(d, stats[d.DeveloperID], fringe))
	}
	return out, nil
}

// GetDeveloper returns one developer with current-month stats.
func (s *developerService) GetDeveloper(ctx context.Context, developerID string) (*dto.DeveloperResponse, error) {
	dev, err := s.developerRepo.FindDeveloperByID(ctx, developerID)
	if err != nil {
		return nil, err
	}
	stats, fringe, err := s.currentMonthStats(ctx)
	if err != nil {
		return nil, err
	}
	resp := developerResponse(*dev, stats[dev.DeveloperID], fringe)
	return &resp, nil
}

// UpdateDeveloper applies admin edits to the payroll fields and active flag.
// Monetary fields must be non-negative; the update is rejected whole if any
// field fails.
func (s *developerService) UpdateDeveloper(ctx context.Context, developerID string, req dto.UpdateDeveloperRequest, actorID string) (*dto.DeveloperResponse, error) {
	dev, err := s.developerRepo.FindDeveloperByID(ctx, developerID)
	if err != nil {
		return nil, err
	}

	if req.MonthlySalary != nil {
		if req.MonthlySalary.IsNegative() {
			return nil, fmt.Errorf("%w: monthly salary cannot be negative", apperrors.ErrValidation)
		}
		dev.MonthlySalary = *req.MonthlySalary
	}
	if req.FringeBenefitRate != nil {
		if req.FringeBenefitRate.IsNegative() {
			return nil, fmt.Errorf("%w: fringe benefit rate cannot be negative", apperrors.ErrValidation)
		}
		dev.FringeBenefitRate = *req.FringeBenefitRate
	}
	if req.StockCompAllocation != nil {
		if req.StockCompAllocation.IsNegative() {
			return nil, fmt.Errorf("%w: stock comp allocation cannot be negative", apperrors.ErrValidation)
		}
		dev.StockCompAllocation = *req.StockCompAllocation
	}
	if req.IsActive != nil {
		dev.IsActive = *req.IsActive
	}
	dev.LastUpdatedAt = time.Now().UTC()
	dev.LastUpdatedBy = actorID

	if err := s.developerRepo.UpdateDeveloper(ctx, *dev); err != nil {
		return nil, fmt.Errorf("failed to update developer %s: %w", developerID, err)
	}
	s.LogInfo(ctx, "Developer updated", slog.String("developerID", developerID), slog.String("actor", actorID))

	return s.GetDeveloper(ctx, developerID)
}

// currentMonthStats recomputes the allocation for the month containing now
// and indexes the per-developer results.
func (s *developerService) currentMonthStats(ctx context.Context) (map[string]developerStats, decimal.Decimal, error) {
	now := time.Now().UTC()
	snap, err := s.allocation.Snapshot(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, decimal.Zero, err
	}

	stats := make(map[string]developerStats)
	for dev, tickets := range snap.TicketsByDeveloper() {
		st := stats[dev]
		st.ticketCount = len(tickets)
		stats[dev] = st
	}
	for _, r := range accounting.AllocateCosts(*snap) {
		st := stats[r.DeveloperID]
		st.totalPoints = r.TotalPoints
		st.capPoints = r.CapPoints
		st.expPoints = r.ExpPoints
		st.capRatio = r.CapRatio
		stats[r.DeveloperID] = st
	}
	return stats, snap.DefaultFringeRate, nil
}

func developerResponse(d domain.Developer, st developerStats, defaultFringe decimal.Decimal) dto.DeveloperResponse {
	return dto.DeveloperResponse{
		DeveloperID:         d.DeveloperID,
		Name:                d.Name,
		Email:               d.Email,
		TrackerUserID:       d.TrackerUserID,
		Role:                string(d.Role),
		IsActive:            d.IsActive,
		MonthlySalary:       d.MonthlySalary,
		FringeBenefitRate:   d.FringeBenefitRate,
		StockCompAllocation: d.StockCompAllocation,
		LoadedCost:          d.LoadedCost(defaultFringe),
		TotalPoints:         st.totalPoints,
		CapPoints:           st.capPoints,
		ExpPoints:           st.expPoints,
		CapRatio:            st.capRatio,
		TicketCount:         st.ticketCount,
	}
}
