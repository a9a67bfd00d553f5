package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

// BetStore persists the full bet collection as a single JSON document.
// All writes serialize the whole collection atomically; reads tolerate a
// missing or corrupt file by substituting an empty collection.
type BetStore struct {
	mu   sync.Mutex
	path string
}

// NewBetStore creates a bet store backed by the file at path.
func NewBetStore(path string) *BetStore {
	return &BetStore{path: path}
}

// List returns all bet records.
func (s *BetStore) List(ctx context.Context) ([]models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Find returns the bet with the given id, or nil when absent.
func (s *BetStore) Find(ctx context.Context, id string) (*models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bets, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range bets {
		if bets[i].ID == id {
			bet := bets[i]
			return &bet, nil
		}
	}
	return nil, nil
}

// Create appends a new bet record and persists the collection.
func (s *BetStore) Create(ctx context.Context, bet models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bets, err := s.load()
	if err != nil {
		return err
	}
	for i := range bets {
		if bets[i].ID == bet.ID {
			return fmt.Errorf("bet %s already exists", bet.ID)
		}
	}
	bets = append(bets, bet)
	return s.save(bets)
}

// Update replaces the record with bet.ID and persists the collection.
func (s *BetStore) Update(ctx context.Context, bet models.Bet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bets, err := s.load()
	if err != nil {
		return err
	}
	for i := range bets {
		if bets[i].ID == bet.ID {
			bets[i] = bet
			return s.save(bets)
		}
	}
	return fmt.Errorf("%w: %s", models.ErrNotFound, bet.ID)
}

func (s *BetStore) load() ([]models.Bet, error) {
	var bets []models.Bet
	err := s.readAll(&bets)
	switch {
	case err == nil:
		return bets, nil
	case os.IsNotExist(err):
		return []models.Bet{}, nil
	default:
		log.WithError(err).WithField("path", s.path).Warn("Failed to read bets file, treating as empty")
		return []models.Bet{}, nil
	}
}

func (s *BetStore) readAll(out *[]models.Bet) error {
	return readDocument(s.path, out)
}

func (s *BetStore) save(bets []models.Bet) error {
	if err := writeDocument(s.path, bets); err != nil {
		return models.NewPersistenceError("save bets", err)
	}
	return nil
}
