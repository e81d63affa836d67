package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/core/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo   *MockPayrollRepository
	mockDeveloperRepo *MockDeveloperRepository
	service           portssvc.PayrollSvcFacade
	ctx               context.Context
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockDeveloperRepo = new(MockDeveloperRepository)
	suite.service = services.NewPayrollService(suite.mockPayrollRepo, suite.mockDeveloperRepo)
	suite.ctx = context.Background()
}

func (suite *PayrollServiceTestSuite) TestUploadSkipsBadRowsAndAppliesTheRest() {
	salary := dec("11000")
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", Email: "dana@example.com", MonthlySalary: dec("10000"), IsActive: true}

	suite.mockDeveloperRepo.On("FindDeveloperByEmail", suite.ctx, "dana@example.com").Return(&dev, nil).Once()
	suite.mockDeveloperRepo.On("FindDeveloperByEmail", suite.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDeveloperRepo.On("UpdateDeveloper", suite.ctx, mock.MatchedBy(func(d domain.Developer) bool {
		return d.DeveloperID == "dev-1" && d.MonthlySalary.Equal(salary)
	})).Return(nil).Once()
	suite.mockPayrollRepo.On("CreateImport", suite.ctx, mock.AnythingOfType("domain.PayrollImport"),
		mock.MatchedBy(func(entries []domain.PayrollEntry) bool {
			return len(entries) == 1 && entries[0].DeveloperID == "dev-1" && entries[0].GrossSalary.Equal(salary)
		})).Return(nil).Once()

	req := dto.PayrollUploadRequest{Data: []dto.PayrollUploadRow{
		{Name: "Dana", Email: "dana@example.com", MonthlySalary: &salary},
		{Name: "Ghost", Email: "ghost@example.com", MonthlySalary: &salary},
		{Name: "No Email"},
	}}

	result, err := suite.service.Upload(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Equal(1, result.Count)
	suite.Equal("Applied 1 of 3 payroll rows", result.Message)
	suite.mockDeveloperRepo.AssertExpectations(suite.T())
	suite.mockPayrollRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestUploadIgnoresNegativeSalary() {
	negative := dec("-500")
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", Email: "dana@example.com", MonthlySalary: dec("10000"), IsActive: true}

	suite.mockDeveloperRepo.On("FindDeveloperByEmail", suite.ctx, "dana@example.com").Return(&dev, nil).Once()
	// The row still applies; the negative figure just does not overwrite.
	suite.mockDeveloperRepo.On("UpdateDeveloper", suite.ctx, mock.MatchedBy(func(d domain.Developer) bool {
		return d.MonthlySalary.Equal(dec("10000"))
	})).Return(nil).Once()
	suite.mockPayrollRepo.On("CreateImport", suite.ctx, mock.AnythingOfType("domain.PayrollImport"),
		mock.AnythingOfType("[]domain.PayrollEntry")).Return(nil).Once()

	req := dto.PayrollUploadRequest{Data: []dto.PayrollUploadRow{
		{Name: "Dana", Email: "dana@example.com", MonthlySalary: &negative},
	}}

	result, err := suite.service.Upload(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Equal(1, result.Count)
}

func (suite *PayrollServiceTestSuite) TestUploadWithNoApplicableRowsRecordsNothing() {
	suite.mockDeveloperRepo.On("FindDeveloperByEmail", suite.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.PayrollUploadRequest{Data: []dto.PayrollUploadRow{
		{Name: "Ghost", Email: "ghost@example.com"},
	}}

	result, err := suite.service.Upload(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Equal(0, result.Count)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "CreateImport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestRegisterBuildsSalaryMatrix() {
	devs := []domain.Developer{
		{DeveloperID: "dev-1", Name: "Dana", Email: "dana@example.com", Role: domain.RoleEngineering},
		{DeveloperID: "dev-2", Name: "Avery", Email: "avery@example.com", Role: domain.RoleQA},
	}
	imports := []domain.PayrollImport{
		{ImportID: "imp-1", Label: "January", PayDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Year: 2024},
		{ImportID: "imp-2", Label: "February", PayDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), Year: 2025},
	}
	entries := map[string][]domain.PayrollEntry{
		"imp-1": {
			{EntryID: "e1", ImportID: "imp-1", DeveloperID: "dev-1", GrossSalary: dec("10000")},
			{EntryID: "e2", ImportID: "imp-1", DeveloperID: "dev-2", GrossSalary: dec("9000")},
		},
		"imp-2": {
			{EntryID: "e3", ImportID: "imp-2", DeveloperID: "dev-1", GrossSalary: dec("10500")},
		},
	}

	suite.mockDeveloperRepo.On("ListDevelopers", suite.ctx).Return(devs, nil).Once()
	suite.mockPayrollRepo.On("ListImports", suite.ctx).Return(imports, nil).Once()
	suite.mockPayrollRepo.On("ListEntriesByImports", suite.ctx, []string{"imp-1", "imp-2"}).Return(entries, nil).Once()

	resp, err := suite.service.Register(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(resp.Developers, 2)
	suite.Len(resp.PayrollImports, 2)
	suite.True(resp.SalaryMap["dev-1"]["imp-2"].Equal(dec("10500")))
	suite.True(resp.ImportTotals["imp-1"].Equal(dec("19000")))
	suite.True(resp.DevTotals["dev-1"].Equal(dec("20500")))
	suite.True(resp.GrandTotal.Equal(dec("29500")))
	suite.Equal("2024-2025", resp.YearLabel)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
