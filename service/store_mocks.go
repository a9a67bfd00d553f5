package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kellybook/models"
)

// MockBankrollStore is a mock implementation of BankrollStore
type MockBankrollStore struct {
	mock.Mock
}

func (m *MockBankrollStore) Get(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBankrollStore) Set(ctx context.Context, bankroll float64) error {
	args := m.Called(ctx, bankroll)
	return args.Error(0)
}

// MockBetStore is a mock implementation of BetStore
type MockBetStore struct {
	mock.Mock
}

func (m *MockBetStore) List(ctx context.Context) ([]models.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockBetStore) Find(ctx context.Context, id string) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetStore) Create(ctx context.Context, bet models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetStore) Update(ctx context.Context, bet models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

// MockBankrollService is a mock implementation of BankrollService
type MockBankrollService struct {
	mock.Mock
}

func (m *MockBankrollService) Current(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBankrollService) Deduct(ctx context.Context, amount float64, reason string) (float64, error) {
	args := m.Called(ctx, amount, reason)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBankrollService) Add(ctx context.Context, amount float64, reason string) (float64, error) {
	args := m.Called(ctx, amount, reason)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBankrollService) SetBankroll(ctx context.Context, bankroll float64) error {
	args := m.Called(ctx, bankroll)
	return args.Error(0)
}
