package storage

import (
	"context"
	"math"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

// bankrollDocument is the persisted shape of the bankroll record
type bankrollDocument struct {
	Bankroll float64 `json:"bankroll"`
}

// BankrollStore persists the single bankroll scalar as a JSON document.
// Reads degrade to the configured default rather than failing; writes are
// atomic and strict.
type BankrollStore struct {
	mu              sync.Mutex
	path            string
	defaultBankroll float64
}

// NewBankrollStore creates a bankroll store backed by the file at path.
func NewBankrollStore(path string, defaultBankroll float64) *BankrollStore {
	return &BankrollStore{path: path, defaultBankroll: defaultBankroll}
}

// Get returns the stored bankroll. A missing file is created with the
// default; a corrupt or unreadable file falls back to the default without
// failing the caller.
func (s *BankrollStore) Get(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc bankrollDocument
	err := readDocument(s.path, &doc)
	switch {
	case err == nil:
		if math.IsNaN(doc.Bankroll) || math.IsInf(doc.Bankroll, 0) {
			log.WithField("path", s.path).Warn("Bankroll file holds a non-finite value, using default")
			return s.defaultBankroll, nil
		}
		return doc.Bankroll, nil
	case os.IsNotExist(err):
		if werr := writeDocument(s.path, bankrollDocument{Bankroll: s.defaultBankroll}); werr != nil {
			log.WithError(werr).WithField("path", s.path).Error("Failed to create bankroll file with default")
		}
		return s.defaultBankroll, nil
	default:
		log.WithError(err).WithField("path", s.path).Warn("Failed to read bankroll file, using default")
		return s.defaultBankroll, nil
	}
}

// Set persists a new bankroll value. Non-finite values are rejected before
// anything touches the file.
func (s *BankrollStore) Set(ctx context.Context, bankroll float64) error {
	if math.IsNaN(bankroll) || math.IsInf(bankroll, 0) {
		return models.NewPersistenceError("save bankroll", models.ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeDocument(s.path, bankrollDocument{Bankroll: bankroll}); err != nil {
		return models.NewPersistenceError("save bankroll", err)
	}
	return nil
}
