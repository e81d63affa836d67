package services_test

import (
	"context"
	"testing"

	"github.com/nocap/captrack_backend/internal/apperrors"
	"github.com/nocap/captrack_backend/internal/core/domain"
	portssvc "github.com/nocap/captrack_backend/internal/core/ports/services"
	"github.com/nocap/captrack_backend/internal/core/services"
	"github.com/nocap/captrack_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DeveloperServiceTestSuite struct {
	suite.Suite
	mockDeveloperRepo *MockDeveloperRepository
	mockProjectRepo   *MockProjectRepository
	mockTicketRepo    *MockTicketRepository
	mockConfigRepo    *MockConfigRepository
	service           portssvc.DeveloperSvcFacade
	ctx               context.Context
}

func (suite *DeveloperServiceTestSuite) SetupTest() {
	suite.mockDeveloperRepo = new(MockDeveloperRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockTicketRepo = new(MockTicketRepository)
	suite.mockConfigRepo = new(MockConfigRepository)

	allocation := services.NewAllocationService(
		suite.mockDeveloperRepo, suite.mockProjectRepo, suite.mockTicketRepo, suite.mockConfigRepo)
	suite.service = services.NewDeveloperService(suite.mockDeveloperRepo, allocation)
	suite.ctx = context.Background()
}

// expectCurrentMonthSnapshot wires the allocation snapshot reads the roster
// views perform for the month containing now.
func (suite *DeveloperServiceTestSuite) expectCurrentMonthSnapshot(devs []domain.Developer) {
	suite.mockDeveloperRepo.On("ListActiveDevelopers", suite.ctx).Return(devs, nil).Once()
	suite.mockDeveloperRepo.On("ListDevelopers", suite.ctx).Return(devs, nil).Once()
	suite.mockProjectRepo.On("ListProjects", suite.ctx).Return([]domain.Project{}, nil).Once()
	suite.mockTicketRepo.On("ListResolvedTicketsInWindow", suite.ctx,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Ticket{}, nil).Once()
	suite.mockConfigRepo.On("FindConfigByKey", suite.ctx, domain.ConfigFringeBenefitRate).
		Return(fringeConfig("0.25"), nil).Once()
}

func (suite *DeveloperServiceTestSuite) TestListDevelopersComputesLoadedCost() {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: dec("10000"), IsActive: true}

	suite.mockDeveloperRepo.On("ListDevelopers", suite.ctx).Return([]domain.Developer{dev}, nil).Once()
	suite.expectCurrentMonthSnapshot([]domain.Developer{dev})

	out, err := suite.service.ListDevelopers(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(out, 1)
	// No personal fringe override: global 0.25 applies.
	suite.True(out[0].LoadedCost.Equal(dec("12500")))
	suite.Equal(0, out[0].TicketCount)
}

func (suite *DeveloperServiceTestSuite) TestUpdateDeveloper() {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: dec("10000"), IsActive: true}
	salary := dec("11000")
	inactive := false

	suite.mockDeveloperRepo.On("FindDeveloperByID", suite.ctx, "dev-1").Return(&dev, nil).Twice()
	suite.mockDeveloperRepo.On("UpdateDeveloper", suite.ctx, mock.MatchedBy(func(d domain.Developer) bool {
		return d.MonthlySalary.Equal(salary) && !d.IsActive && d.LastUpdatedBy == "tester"
	})).Return(nil).Once()
	suite.expectCurrentMonthSnapshot([]domain.Developer{})

	resp, err := suite.service.UpdateDeveloper(suite.ctx, "dev-1",
		dto.UpdateDeveloperRequest{MonthlySalary: &salary, IsActive: &inactive}, "tester")

	suite.Require().NoError(err)
	suite.True(resp.MonthlySalary.Equal(salary))
	suite.False(resp.IsActive)
	suite.mockDeveloperRepo.AssertExpectations(suite.T())
}

func (suite *DeveloperServiceTestSuite) TestUpdateDeveloperRejectsNegativeSalary() {
	dev := domain.Developer{DeveloperID: "dev-1", Name: "Dana", MonthlySalary: dec("10000"), IsActive: true}
	negative := dec("-1")

	suite.mockDeveloperRepo.On("FindDeveloperByID", suite.ctx, "dev-1").Return(&dev, nil).Once()

	_, err := suite.service.UpdateDeveloper(suite.ctx, "dev-1",
		dto.UpdateDeveloperRequest{MonthlySalary: &negative}, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDeveloperRepo.AssertNotCalled(suite.T(), "UpdateDeveloper", mock.Anything, mock.Anything)
}

func (suite *DeveloperServiceTestSuite) TestUpdateDeveloperUnknownID() {
	suite.mockDeveloperRepo.On("FindDeveloperByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	salary := dec("11000")
	_, err := suite.service.UpdateDeveloper(suite.ctx, "missing",
		dto.UpdateDeveloperRequest{MonthlySalary: &salary}, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDeveloperServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DeveloperServiceTestSuite))
}
