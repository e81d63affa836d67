package repositories

import (
	"context"

	"github.com/nocap/captrack_backend/internal/core/domain"
)

// ConfigReader defines read operations for global configuration
type ConfigReader interface {
	// ListConfigs retrieves all configuration rows ordered by key.
	ListConfigs(ctx context.Context) ([]domain.GlobalConfig, error)

	// FindConfigByKey retrieves one configuration row.
	FindConfigByKey(ctx context.Context, key string) (*domain.GlobalConfig, error)
}

// ConfigWriter defines write operations for global configuration
type ConfigWriter interface {
	// UpdateConfigValue sets the value of an existing configuration key.
	UpdateConfigValue(ctx context.Context, key, value, updatedBy string) error
}

// ConfigRepositoryFacade combines configuration repository interfaces
type ConfigRepositoryFacade interface {
	ConfigReader
	ConfigWriter
}
