package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full repository set over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		DeveloperRepo:  NewPgxDeveloperRepository(pool),
		ProjectRepo:    NewPgxProjectRepository(pool),
		TicketRepo:     NewPgxTicketRepository(pool),
		AccountingRepo: NewPgxAccountingRepository(pool),
		ConfigRepo:     NewPgxConfigRepository(pool),
		PayrollRepo:    NewPgxPayrollRepository(pool),
		UserRepo:       NewPgxUserRepository(pool),
	}
}
