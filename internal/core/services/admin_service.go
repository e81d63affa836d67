package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// numericConfigKeys are config values that must parse as decimals.
var numericConfigKeys = map[string]bool{
	domain.ConfigFringeBenefitRate:       true,
	domain.ConfigDefaultAmortizationLife: true,
	domain.ConfigCapitalizationThreshold: true,
}

// adminService serves the admin surface: global config and console users.
type adminService struct {
	BaseService
	configRepo portsrepo.ConfigRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewAdminService creates the admin service.
func NewAdminService(configRepo portsrepo.ConfigRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AdminSvcFacade {
	return &adminService{configRepo: configRepo, userRepo: userRepo}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// Overview lists all configuration rows and console users.
func (s *adminService) Overview(ctx context.Context) (*dto.AdminOverviewResponse, error) {
	configs, err := s.configRepo.ListConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &dto.AdminOverviewResponse{
		Configs: make([]dto.ConfigResponse, 0, len(configs)),
		Users:   make([]dto.AdminUserResponse, 0, len(users)),
	}
	for _, c := range configs {
		resp.Configs = append(resp.Configs, dto.ConfigResponse{Key: c.Key, Value: c.Value, Label: c.Label})
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.AdminUserResponse{
			UserID:    u.UserID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return resp, nil
}

// Update applies either a config value change or a user role change. Config
// values for numeric keys must parse as non-negative decimals.
func (s *adminService) Update(ctx context.Context, req dto.AdminUpdateRequest, actorID string) error {
	switch req.Type {
	case "config":
		if req.Key == "" {
			return fmt.Errorf("%w: config key is required", apperrors.ErrValidation)
		}
		if numericConfigKeys[req.Key] {
			v, err := decimal.NewFromString(req.Value)
			if err != nil || v.IsNegative() {
				return fmt.Errorf("%w: %s must be a non-negative number, got %q", apperrors.ErrValidation, req.Key, req.Value)
			}
		}
		if err := s.configRepo.UpdateConfigValue(ctx, req.Key, req.Value, actorID); err != nil {
			return err
		}
		s.LogInfo(ctx, "Config updated",
			slog.String("key", req.Key), slog.String("value", req.Value), slog.String("actor", actorID))
		return nil

	case "user_role":
		if req.ID == "" || req.Role == "" {
			return fmt.Errorf("%w: user id and role are required", apperrors.ErrValidation)
		}
		if err := s.userRepo.UpdateUserRole(ctx, req.ID, domain.UserRole(req.Role), actorID); err != nil {
			return err
		}
		s.LogInfo(ctx, "User role updated",
			slog.String("userID", req.ID), slog.String("role", req.Role), slog.String("actor", actorID))
		return nil

	default:
		return fmt.Errorf("%w: unknown update type %q", apperrors.ErrValidation, req.Type)
	}
}
