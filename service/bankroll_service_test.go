package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kellybook/models"
)

func TestBankrollService_Current(t *testing.T) {
	ctx := context.Background()
	svc := NewBankrollService(newMemBankrollStore(3000), nil, 3000)

	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, bankroll)
}

func TestBankrollService_CurrentDegradesToDefault(t *testing.T) {
	ctx := context.Background()

	mockStore := new(MockBankrollStore)
	mockStore.On("Get", ctx).Return(0.0, errors.New("connection refused"))

	svc := NewBankrollService(mockStore, nil, 3000)

	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, bankroll)
	mockStore.AssertExpectations(t)
}

func TestBankrollService_DeductAndAdd(t *testing.T) {
	ctx := context.Background()
	store := newMemBankrollStore(3000)
	svc := NewBankrollService(store, nil, 3000)

	updated, err := svc.Deduct(ctx, 250.5, "bet placed")
	require.NoError(t, err)
	assert.Equal(t, 2749.5, updated)

	updated, err = svc.Add(ctx, 100, "settlement")
	require.NoError(t, err)
	assert.Equal(t, 2849.5, updated)
}

func TestBankrollService_DeductRejectsOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newMemBankrollStore(50)
	svc := NewBankrollService(store, nil, 3000)

	_, err := svc.Deduct(ctx, 200, "bet placed")
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	// Nothing was spent
	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, bankroll)

	// Deducting exactly the full bankroll is allowed
	updated, err := svc.Deduct(ctx, 50, "bet placed")
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated)
}

func TestBankrollService_AddDebitCanGoNegative(t *testing.T) {
	ctx := context.Background()
	svc := NewBankrollService(newMemBankrollStore(50), nil, 3000)

	// Settlement reversals are debits with no floor
	updated, err := svc.Add(ctx, -200, "revert settle")
	require.NoError(t, err)
	assert.Equal(t, -150.0, updated)
}

func TestBankrollService_AddTreatsNonFiniteAsZero(t *testing.T) {
	ctx := context.Background()
	svc := NewBankrollService(newMemBankrollStore(3000), nil, 3000)

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0} {
		updated, err := svc.Add(ctx, amount, "noise")
		require.NoError(t, err)
		assert.Equal(t, 3000.0, updated)
	}

	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, bankroll)
}

func TestBankrollService_DeductRejectsInvalidAmounts(t *testing.T) {
	ctx := context.Background()
	svc := NewBankrollService(newMemBankrollStore(3000), nil, 3000)

	for _, amount := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := svc.Deduct(ctx, amount, "bad")
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
	}

	// Amount validation runs before any store access
	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, bankroll)
}

func TestBankrollService_SetBankroll(t *testing.T) {
	ctx := context.Background()
	store := newMemBankrollStore(3000)
	svc := NewBankrollService(store, nil, 3000)

	require.NoError(t, svc.SetBankroll(ctx, 5000))

	bankroll, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, bankroll)
}

func TestBankrollService_MutationsPropagateStoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("disk full")

	mockStore := new(MockBankrollStore)
	mockStore.On("Get", ctx).Return(0.0, storeErr)

	svc := NewBankrollService(mockStore, nil, 3000)

	_, err := svc.Deduct(ctx, 10, "bet placed")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Add(ctx, 10, "settlement")
	assert.ErrorIs(t, err, storeErr)
	mockStore.AssertExpectations(t)
}
