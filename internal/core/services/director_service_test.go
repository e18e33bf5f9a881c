package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DirectorServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockGateway     *MockDecisionGateway
	service         portssvc.DirectorSvcFacade
	session         *domain.Session
	all             []domain.Expense
	pending         []domain.Expense
}

func (suite *DirectorServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGateway = new(MockDecisionGateway)
	suite.service = services.NewDirectorService(suite.mockExpenseRepo, suite.mockGateway)
	suite.session = domain.NewSession("s-1", domain.User{UserID: "u-9", EmployeeID: "FIN001"}, true, time.Now())

	suite.pending = []domain.Expense{
		expense("p-1", domain.StatusManualReview, "50", "travel"),
		expense("p-2", domain.StatusManualReview, "20", "food"),
	}
	suite.all = append([]domain.Expense{
		expense("a-1", domain.StatusApproved, "100", "food"),
		expense("r-1", domain.StatusRejected, "5", "cigarettes"),
		expense("x-1", domain.ExpenseStatus(""), "1", ""),
	}, suite.pending...)
}

func TestDirectorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DirectorServiceTestSuite))
}

func (suite *DirectorServiceTestSuite) expectReload() {
	suite.mockExpenseRepo.On("ListAllExpenses", mock.Anything).Return(suite.all, nil)
	suite.mockExpenseRepo.On("ListExpensesByStatus", mock.Anything, domain.StatusManualReview).Return(suite.pending, nil)
}

func (suite *DirectorServiceTestSuite) TestGetStats() {
	suite.expectReload()

	stats, err := suite.service.GetStats(context.Background())

	suite.Require().NoError(err)
	suite.Equal(5, stats.TotalCount)
	suite.Equal(1, stats.ApprovedCount)
	suite.Equal(1, stats.RejectedCount)
	suite.Equal(3, stats.PendingCount)
	suite.True(stats.TotalAmount.Equal(decimal.RequireFromString("176")))
}

func (suite *DirectorServiceTestSuite) TestReloadSession() {
	suite.expectReload()

	suite.Require().NoError(suite.service.ReloadSession(context.Background(), suite.session))

	stats, pending := suite.session.DirectorView()
	suite.Equal(5, stats.TotalCount)
	suite.Len(pending, 2)
}

func (suite *DirectorServiceTestSuite) TestApprove_SuccessDismissesItem() {
	ctx := context.Background()
	suite.expectReload()
	suite.Require().NoError(suite.service.ReloadSession(ctx, suite.session))

	decision := domain.Decision{Action: domain.ActionApprove, ExpenseID: "p-1"}
	suite.mockGateway.On("PostDecision", ctx, decision).Return(&domain.DecisionResult{Success: true}, nil).Once()

	result, err := suite.service.Decide(ctx, suite.session, decision)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(domain.MsgDecisionApproved, result.Message)
	_, pending := suite.session.DirectorView()
	suite.Require().Len(pending, 1)
	suite.Equal("p-2", pending[0].ExpenseID)
	suite.mockExpenseRepo.AssertNumberOfCalls(suite.T(), "ListAllExpenses", 2)
}

func (suite *DirectorServiceTestSuite) TestApprove_RefusedKeepsItem() {
	ctx := context.Background()
	suite.expectReload()
	suite.Require().NoError(suite.service.ReloadSession(ctx, suite.session))

	decision := domain.Decision{Action: domain.ActionApprove, ExpenseID: "p-1"}
	suite.mockGateway.On("PostDecision", ctx, decision).Return(&domain.DecisionResult{Success: false, Message: "X"}, nil).Once()

	result, err := suite.service.Decide(ctx, suite.session, decision)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal("X", result.Message)
	_, pending := suite.session.DirectorView()
	suite.Len(pending, 2)
	suite.mockExpenseRepo.AssertNumberOfCalls(suite.T(), "ListAllExpenses", 1)
}

func (suite *DirectorServiceTestSuite) TestReject_EmptyReasonIsCancelled() {
	_, err := suite.service.Decide(context.Background(), suite.session, domain.Decision{Action: domain.ActionReject, ExpenseID: "p-1", Reason: "  "})

	suite.ErrorIs(err, apperrors.ErrValidation)
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Equal(domain.MsgDecisionCancelled, vErr.Message)
	suite.mockGateway.AssertNotCalled(suite.T(), "PostDecision", mock.Anything, mock.Anything)
}

func (suite *DirectorServiceTestSuite) TestReject_WithReason() {
	ctx := context.Background()
	suite.expectReload()

	expected := domain.Decision{Action: domain.ActionReject, ExpenseID: "p-2", Reason: "duplicate"}
	suite.mockGateway.On("PostDecision", ctx, expected).Return(&domain.DecisionResult{Success: true}, nil).Once()

	result, err := suite.service.Decide(ctx, suite.session, domain.Decision{Action: domain.ActionReject, ExpenseID: "p-2", Reason: " duplicate "})

	suite.Require().NoError(err)
	suite.Equal(domain.MsgDecisionRejected, result.Message)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *DirectorServiceTestSuite) TestDecide_UnknownAction() {
	_, err := suite.service.Decide(context.Background(), suite.session, domain.Decision{Action: "escalate", ExpenseID: "p-1"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DirectorServiceTestSuite) TestDecide_TransportFailure() {
	ctx := context.Background()
	decision := domain.Decision{Action: domain.ActionApprove, ExpenseID: "p-1"}
	suite.mockGateway.On("PostDecision", ctx, decision).Return(nil, &apperrors.UpstreamError{Service: "decision webhook", StatusCode: 500}).Once()

	result, err := suite.service.Decide(ctx, suite.session, decision)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUpstream)
}
