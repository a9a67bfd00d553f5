package service

import (
	"context"
	"fmt"
	"sync"

	"kellybook/models"
)

// memBankrollStore is an in-memory BankrollStore for exercising full
// lifecycle flows without the filesystem.
type memBankrollStore struct {
	mu       sync.Mutex
	bankroll float64
	failSet  error
}

func newMemBankrollStore(initial float64) *memBankrollStore {
	return &memBankrollStore{bankroll: initial}
}

func (s *memBankrollStore) Get(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bankroll, nil
}

func (s *memBankrollStore) Set(ctx context.Context, bankroll float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.bankroll = bankroll
	return nil
}

// memBetStore is an in-memory BetStore with injectable write failures
type memBetStore struct {
	mu         sync.Mutex
	bets       []models.Bet
	failCreate error
	failUpdate error
	updates    int
}

func newMemBetStore() *memBetStore {
	return &memBetStore{}
}

func (s *memBetStore) List(ctx context.Context) ([]models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Bet, len(s.bets))
	copy(out, s.bets)
	return out, nil
}

func (s *memBetStore) Find(ctx context.Context, id string) (*models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, bet := range s.bets {
		if bet.ID == id {
			found := bet
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memBetStore) Create(ctx context.Context, bet models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	for _, existing := range s.bets {
		if existing.ID == bet.ID {
			return fmt.Errorf("bet %s already exists", bet.ID)
		}
	}
	s.bets = append(s.bets, bet)
	return nil
}

func (s *memBetStore) Update(ctx context.Context, bet models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate != nil {
		return s.failUpdate
	}
	for i, existing := range s.bets {
		if existing.ID == bet.ID {
			s.bets[i] = bet
			s.updates++
			return nil
		}
	}
	return fmt.Errorf("%w: %s", models.ErrNotFound, bet.ID)
}

func (s *memBetStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

func floatPtr(v float64) *float64 {
	return &v
}
