package services

import (
	portsrepo "github.com/nocap/captrack_backend/internal/core/ports/repositories"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// The allocation service is built first because generation, reporting and
// the developer views all read through it.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	allocation := NewAllocationService(repos.DeveloperRepo, repos.ProjectRepo, repos.TicketRepo, repos.ConfigRepo)

	return &portssvc.ServiceContainer{
		Allocation: allocation,
		Generation: NewGenerationService(allocation, repos.ProjectRepo, repos.AccountingRepo),
		Accounting: NewAccountingService(repos.AccountingRepo, repos.ProjectRepo),
		Reporting:  NewReportingService(allocation, repos.DeveloperRepo, repos.ProjectRepo, repos.AccountingRepo, repos.PayrollRepo),
		Developer:  NewDeveloperService(repos.DeveloperRepo, allocation),
		Project:    NewProjectService(repos.ProjectRepo, repos.DeveloperRepo, repos.TicketRepo, repos.AccountingRepo),
		Ticket:     NewTicketService(repos.TicketRepo, repos.DeveloperRepo, repos.ProjectRepo, repos.AccountingRepo),
		Payroll:    NewPayrollService(repos.PayrollRepo, repos.DeveloperRepo),
		Sync:       NewSyncService(repos.DeveloperRepo, repos.ProjectRepo, repos.TicketRepo),
		Admin:      NewAdminService(repos.ConfigRepo, repos.UserRepo),
	}
}
