package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
)

type PgxConfigRepository struct {
	pool *pgxpool.Pool
}

// NewPgxConfigRepository creates a new repository for global configuration.
func NewPgxConfigRepository(pool *pgxpool.Pool) portsrepo.ConfigRepositoryFacade {
	return &PgxConfigRepository{pool: pool}
}

var _ portsrepo.ConfigRepositoryFacade = (*PgxConfigRepository)(nil)

// ListConfigs retrieves all configuration rows ordered by key.
func (r *PgxConfigRepository) ListConfigs(ctx context.Context) ([]domain.GlobalConfig, error) {
	query := `SELECT key, value, label FROM global_config ORDER BY key;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	configs := []domain.GlobalConfig{}
	for rows.Next() {
		var c domain.GlobalConfig
		if err := rows.Scan(&c.Key, &c.Value, &c.Label); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating config rows: %w", err)
	}
	return configs, nil
}

// FindConfigByKey retrieves one configuration row.
func (r *PgxConfigRepository) FindConfigByKey(ctx context.Context, key string) (*domain.GlobalConfig, error) {
	query := `SELECT key, value, label FROM global_config WHERE key = $1;`
	var c domain.GlobalConfig
	err := r.pool.QueryRow(ctx, query, key).Scan(&c.Key, &c.Value, &c.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find config %s: %w", key, err)
	}
	return &c, nil
}

// UpdateConfigValue sets the value of an existing configuration key.
func (r *PgxConfigRepository) UpdateConfigValue(ctx context.Context, key, value, updatedBy string) error {
	query := `
		UPDATE global_config
		SET value = $2, last_updated_at = $3, last_updated_by = $4
		WHERE key = $1;
	`
	tag, err := r.pool.Exec(ctx, query, key, value, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update config %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
