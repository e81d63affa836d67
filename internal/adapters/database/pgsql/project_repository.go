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

const projectColumns = `project_id, name, description, epic_key, status, is_capitalizable, start_date, launch_date, amortization_months, accumulated_cost, starting_balance, starting_amortization, override_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProjectRepository creates a new repository for project data.
func NewPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{pool: pool}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.Description,
		&p.EpicKey,
		&p.Status,
		&p.IsCapitalizable,
		&p.StartDate,
		&p.LaunchDate,
		&p.AmortizationMonths,
		&p.AccumulatedCost,
		&p.StartingBalance,
		&p.StartingAmortization,
		&p.OverrideReason,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxProjectRepository) listProjects(ctx context.Context, query string) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// ListProjects retrieves all projects, newest first.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC;`
	return r.listProjects(ctx, query)
}

// ListAmortizableProjects retrieves projects that are LIVE and launched.
func (r *PgxProjectRepository) ListAmortizableProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = 'LIVE' AND launch_date IS NOT NULL ORDER BY name;`
	return r.listProjects(ctx, query)
}

// ListCapitalizableProjects retrieves projects flagged capitalizable.
func (r *PgxProjectRepository) ListCapitalizableProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE is_capitalizable ORDER BY name;`
	return r.listProjects(ctx, query)
}

// FindProjectByID retrieves a project by its unique identifier.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	p, err := scanProject(r.pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return &p, nil
}

// UpdateProject persists changes to a project's accounting treatment fields.
// AccumulatedCost is deliberately not written here; the ledger writer owns it.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET status = $2,
			is_capitalizable = $3,
			launch_date = $4,
			amortization_months = $5,
			starting_balance = $6,
			starting_amortization = $7,
			override_reason = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE project_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		project.ProjectID,
		project.Status,
		project.IsCapitalizable,
		project.LaunchDate,
		project.AmortizationMonths,
		project.StartingBalance,
		project.StartingAmortization,
		project.OverrideReason,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
