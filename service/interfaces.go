package service

import (
	"context"

	"kellybook/models"
)

// BankrollStore persists the single bankroll value
type BankrollStore interface {
	// Get returns the current bankroll, falling back to the configured
	// default when no value has been stored yet
	Get(ctx context.Context) (float64, error)

	// Set overwrites the stored bankroll
	Set(ctx context.Context, bankroll float64) error
}

// BetStore persists bet records
type BetStore interface {
	// List returns all bets, oldest first
	List(ctx context.Context) ([]models.Bet, error)

	// Find returns the bet with the given ID, or nil when absent
	Find(ctx context.Context, id string) (*models.Bet, error)

	// Create appends a new bet. The ID must not already exist
	Create(ctx context.Context, bet models.Bet) error

	// Update replaces the bet with the same ID
	Update(ctx context.Context, bet models.Bet) error
}

// AliasStore persists user-defined name aliases for one category
type AliasStore interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, aliases map[string]string) error
}

// BankrollService manages the bankroll ledger
type BankrollService interface {
	// Current returns the current bankroll, degrading to the configured
	// default when the store cannot be read
	Current(ctx context.Context) (float64, error)

	// Deduct subtracts amount from the bankroll and returns the new value.
	// Fails with ErrInsufficientFunds when amount exceeds the bankroll.
	Deduct(ctx context.Context, amount float64, reason string) (float64, error)

	// Add credits amount to the bankroll and returns the new value. A
	// negative amount is a debit and may take the bankroll negative;
	// non-finite amounts are treated as 0.
	Add(ctx context.Context, amount float64, reason string) (float64, error)

	// SetBankroll overwrites the bankroll with an explicit value
	SetBankroll(ctx context.Context, bankroll float64) error
}

// BetService manages the bet lifecycle
type BetService interface {
	// Initiate computes a recommended stake for the input without
	// touching the bankroll or the bet store
	Initiate(ctx context.Context, input models.BetInput, commission *float64) (*models.PreparedBet, error)

	// Finalize deducts the stake from the bankroll and records the bet
	// as pending. On a persistence failure the deduction is reversed.
	Finalize(ctx context.Context, prepared models.PreparedBet, stake float64) (*models.Bet, error)

	// Edit applies a single-field change to a pending bet
	Edit(ctx context.Context, betID string, field models.EditField, value string) (*models.Bet, error)

	// Settle resolves a pending bet with the given outcome. userReturn is
	// only consulted for the part-win outcome.
	Settle(ctx context.Context, betID string, outcome models.Outcome, userReturn float64) (*models.SettleResult, error)

	// Unsettle reverts a settled bet to pending, reversing its bankroll effect
	Unsettle(ctx context.Context, betID string) (*models.Bet, error)

	// Pending returns all bets still awaiting settlement
	Pending(ctx context.Context) ([]models.Bet, error)

	// Find returns the bet with the given ID, or nil when absent
	Find(ctx context.Context, betID string) (*models.Bet, error)
}

// StatsService aggregates bet history
type StatsService interface {
	// Stats computes a summary over the stored bets matching the filter
	Stats(ctx context.Context, filter models.StatsFilter) (*models.StatsSummary, error)
}
