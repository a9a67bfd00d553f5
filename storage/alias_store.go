package storage

import (
	"context"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

// AliasStore persists a name→canonical-name alias map as a JSON document.
// Used for the bookmaker and sport alias files consumed by the bet-string
// parser.
type AliasStore struct {
	mu   sync.Mutex
	path string
	kind string // "bookmaker" or "sport", for logging only
}

// NewAliasStore creates an alias store backed by the file at path.
func NewAliasStore(path, kind string) *AliasStore {
	return &AliasStore{path: path, kind: kind}
}

// Load returns the alias map, substituting an empty map when the file is
// missing or corrupt.
func (s *AliasStore) Load(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aliases := map[string]string{}
	err := readDocument(s.path, &aliases)
	switch {
	case err == nil:
		return aliases, nil
	case os.IsNotExist(err):
		return map[string]string{}, nil
	default:
		log.WithError(err).WithFields(log.Fields{"path": s.path, "kind": s.kind}).
			Warn("Failed to read alias file, using empty map")
		return map[string]string{}, nil
	}
}

// Save persists the alias map.
func (s *AliasStore) Save(ctx context.Context, aliases map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeDocument(s.path, aliases); err != nil {
		return models.NewPersistenceError("save "+s.kind+" aliases", err)
	}
	return nil
}
