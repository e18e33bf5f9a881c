package services_test

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	args := m.Called(ctx, userID)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) ListAllExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByStatus(ctx context.Context, status domain.ExpenseStatus) ([]domain.Expense, error) {
	args := m.Called(ctx, status)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

// --- Mock workflow gateways ---
type MockSubmissionGateway struct {
	mock.Mock
}

func (m *MockSubmissionGateway) SubmitExpense(ctx context.Context, req gateways.SubmissionRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	var raw json.RawMessage
	if args.Get(0) != nil {
		raw = args.Get(0).(json.RawMessage)
	}
	return raw, args.Error(1)
}

type MockDecisionGateway struct {
	mock.Mock
}

func (m *MockDecisionGateway) PostDecision(ctx context.Context, decision domain.Decision) (*domain.DecisionResult, error) {
	args := m.Called(ctx, decision)
	var result *domain.DecisionResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.DecisionResult)
	}
	return result, args.Error(1)
}

type MockChatGateway struct {
	mock.Mock
}

func (m *MockChatGateway) SendChat(ctx context.Context, req domain.ChatRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	var raw json.RawMessage
	if args.Get(0) != nil {
		raw = args.Get(0).(json.RawMessage)
	}
	return raw, args.Error(1)
}
