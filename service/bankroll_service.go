package service

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"kellybook/events"
	"kellybook/models"
)

type bankrollService struct {
	store           BankrollStore
	bus             *events.Bus
	defaultBankroll float64
}

// NewBankrollService creates a new bankroll service. defaultBankroll is the
// value reads degrade to when the store is unreachable.
func NewBankrollService(store BankrollStore, bus *events.Bus, defaultBankroll float64) BankrollService {
	return &bankrollService{
		store:           store,
		bus:             bus,
		defaultBankroll: defaultBankroll,
	}
}

// Current reads the bankroll. A failing store degrades to the default
// rather than failing the caller; mutations stay strict.
func (s *bankrollService) Current(ctx context.Context) (float64, error) {
	bankroll, err := s.store.Get(ctx)
	if err != nil {
		log.WithError(err).WithField("default", s.defaultBankroll).
			Warn("Failed to read bankroll, using default")
		return s.defaultBankroll, nil
	}
	return bankroll, nil
}

// Deduct spends amount from the bankroll. It refuses to spend more than is
// there; reversals that must always land go through Add with a negative
// amount instead.
func (s *bankrollService) Deduct(ctx context.Context, amount float64, reason string) (float64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidAmount, amount)
	}

	current, err := s.store.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get bankroll: %w", err)
	}
	if amount > current {
		return 0, fmt.Errorf("%w: %.2f exceeds %.2f", models.ErrInsufficientFunds, amount, current)
	}

	return s.apply(ctx, current, -amount, reason)
}

// Add credits amount to the bankroll. A negative amount is a debit and may
// take the bankroll negative. Non-finite amounts are treated as 0.
func (s *bankrollService) Add(ctx context.Context, amount float64, reason string) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		log.WithFields(log.Fields{
			"amount": amount,
			"reason": reason,
		}).Warn("Non-finite bankroll credit treated as 0")
		amount = 0
	}

	current, err := s.store.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get bankroll: %w", err)
	}
	if amount == 0 {
		return current, nil
	}

	return s.apply(ctx, current, amount, reason)
}

// apply persists current+delta and announces the change
func (s *bankrollService) apply(ctx context.Context, current, delta float64, reason string) (float64, error) {
	updated := current + delta
	if err := s.store.Set(ctx, updated); err != nil {
		return 0, fmt.Errorf("failed to save bankroll: %w", err)
	}

	log.WithFields(log.Fields{
		"oldBankroll": current,
		"newBankroll": updated,
		"delta":       delta,
		"reason":      reason,
	}).Info("Bankroll updated")

	if s.bus != nil {
		s.bus.Emit(ctx, events.BankrollChangedEvent{
			OldBankroll: current,
			NewBankroll: updated,
			Delta:       delta,
			Reason:      reason,
		})
	}

	return updated, nil
}

func (s *bankrollService) SetBankroll(ctx context.Context, bankroll float64) error {
	if math.IsNaN(bankroll) || math.IsInf(bankroll, 0) {
		return fmt.Errorf("%w: %v", models.ErrInvalidAmount, bankroll)
	}

	current, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bankroll: %w", err)
	}

	if err := s.store.Set(ctx, bankroll); err != nil {
		return fmt.Errorf("failed to save bankroll: %w", err)
	}

	log.WithFields(log.Fields{
		"oldBankroll": current,
		"newBankroll": bankroll,
	}).Info("Bankroll set")

	if s.bus != nil {
		s.bus.Emit(ctx, events.BankrollChangedEvent{
			OldBankroll: current,
			NewBankroll: bankroll,
			Delta:       bankroll - current,
			Reason:      "manual set",
		})
	}

	return nil
}
