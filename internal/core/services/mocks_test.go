package services_test

import (
	"context"
	"time"

	"github.com/nocap/captrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDeveloperRepository is a mock implementation of the developer
// repository facade.
type MockDeveloperRepository struct {
	mock.Mock
}

func (m *MockDeveloperRepository) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) ListActiveDevelopers(ctx context.Context) ([]domain.Developer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) FindDeveloperByID(ctx context.Context, developerID string) (*domain.Developer, error) {
	args := m.Called(ctx, developerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) FindDeveloperByEmail(ctx context.Context, email string) (*domain.Developer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) UpdateDeveloper(ctx context.Context, developer domain.Developer) error {
	args := m.Called(ctx, developer)
	return args.Error(0)
}

// MockProjectRepository is a mock implementation of the project repository
// facade.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListAmortizableProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListCapitalizableProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of the ticket repository
// facade.
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListTicketsByProject(ctx context.Context, projectID string) ([]domain.Ticket, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListResolvedTicketsInWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

// MockConfigRepository is a mock implementation of the config repository
// facade.
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) ListConfigs(ctx context.Context) ([]domain.GlobalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GlobalConfig), args.Error(1)
}

func (m *MockConfigRepository) FindConfigByKey(ctx context.Context, key string) (*domain.GlobalConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalConfig), args.Error(1)
}

func (m *MockConfigRepository) UpdateConfigValue(ctx context.Context, key, value, updatedBy string) error {
	args := m.Called(ctx, key, value, updatedBy)
	return args.Error(0)
}

// MockAccountingRepository is a mock implementation of the accounting
// repository facade.
type MockAccountingRepository struct {
	mock.Mock
}

func (m *MockAccountingRepository) FindPeriod(ctx context.Context, month, year int) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingRepository) ListTrailsByEntry(ctx context.Context, entryID string) ([]domain.AuditTrail, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditTrail), args.Error(1)
}

func (m *MockAccountingRepository) FindTicketsByIDs(ctx context.Context, ids []string) (map[string]domain.Ticket, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Ticket), args.Error(1)
}

func (m *MockAccountingRepository) SumCapitalizationByProject(ctx context.Context, excludePeriodID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, excludePeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockAccountingRepository) SumAllocationsByTicket(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockAccountingRepository) CountEntriesByProject(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockAccountingRepository) ReplacePeriodEntries(
	ctx context.Context,
	period domain.AccountingPeriod,
	entries []domain.JournalEntry,
	trails []domain.AuditTrail,
	recostProjectIDs []string,
) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, period, entries, trails, recostProjectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

// MockPayrollRepository is a mock implementation of the payroll repository
// facade.
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) ListImports(ctx context.Context) ([]domain.PayrollImport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollImport), args.Error(1)
}

func (m *MockPayrollRepository) ListEntriesByImports(ctx context.Context, importIDs []string) (map[string][]domain.PayrollEntry, error) {
	args := m.Called(ctx, importIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.PayrollEntry), args.Error(1)
}

func (m *MockPayrollRepository) SumGrossByDeveloper(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockPayrollRepository) CreateImport(ctx context.Context, imp domain.PayrollImport, entries []domain.PayrollEntry) error {
	args := m.Called(ctx, imp, entries)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of the user repository facade.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string) error {
	args := m.Called(ctx, userID, role, updatedBy)
	return args.Error(0)
}
