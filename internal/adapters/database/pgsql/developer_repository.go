package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
)

const developerColumns = `developer_id, name, email, tracker_user_id, role, monthly_salary, fringe_benefit_rate, stock_comp_allocation, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxDeveloperRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDeveloperRepository creates a new repository for developer data.
func NewPgxDeveloperRepository(pool *pgxpool.Pool) portsrepo.DeveloperRepositoryFacade {
	return &PgxDeveloperRepository{pool: pool}
}

var _ portsrepo.DeveloperRepositoryFacade = (*PgxDeveloperRepository)(nil)

func scanDeveloper(row pgx.Row) (domain.Developer, error) {
	var d domain.Developer
	err := row.Scan(
		&d.DeveloperID,
		&d.Name,
		&d.Email,
		&d.TrackerUserID,
		&d.Role,
		&d.MonthlySalary,
		&d.FringeBenefitRate,
		&d.StockCompAllocation,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

func (r *PgxDeveloperRepository) listDevelopers(ctx context.Context, query string) ([]domain.Developer, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query developers: %w", err)
	}
	defer rows.Close()

	developers := []domain.Developer{}
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan developer row: %w", err)
		}
		developers = append(developers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating developer rows: %w", err)
	}
	return developers, nil
}

// ListDevelopers retrieves all developers ordered by name.
func (r *PgxDeveloperRepository) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers ORDER BY name;`
	return r.listDevelopers(ctx, query)
}

// ListActiveDevelopers retrieves only developers currently on payroll.
func (r *PgxDeveloperRepository) ListActiveDevelopers(ctx context.Context) ([]domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers WHERE is_active ORDER BY name;`
	return r.listDevelopers(ctx, query)
}

// FindDeveloperByID retrieves a developer by their unique identifier.
func (r *PgxDeveloperRepository) FindDeveloperByID(ctx context.Context, developerID string) (*domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers WHERE developer_id = $1;`
	d, err := scanDeveloper(r.pool.QueryRow(ctx, query, developerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find developer by ID %s: %w", developerID, err)
	}
	return &d, nil
}

// FindDeveloperByEmail retrieves a developer by email, case-insensitively.
func (r *PgxDeveloperRepository) FindDeveloperByEmail(ctx context.Context, email string) (*domain.Developer, error) {
	query := `SELECT ` + developerColumns + ` FROM developers WHERE lower(email) = lower($1);`
	d, err := scanDeveloper(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find developer by email %s: %w", email, err)
	}
	return &d, nil
}

// UpdateDeveloper persists changes to a developer's payroll fields and active flag.
func (r *PgxDeveloperRepository) UpdateDeveloper(ctx context.Context, developer domain.Developer) error {
	query := `
		UPDATE developers
		SET monthly_salary = $2,
			fringe_benefit_rate = $3,
			stock_comp_allocation = $4,
			is_active = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE developer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		developer.DeveloperID,
		developer.MonthlySalary,
		developer.FringeBenefitRate,
		developer.StockCompAllocation,
		developer.IsActive,
		developer.LastUpdatedAt,
		developer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update developer %s: %w", developer.DeveloperID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
