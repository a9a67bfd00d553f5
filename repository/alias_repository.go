package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kellybook/database"
	"kellybook/models"
)

// AliasRepository implements the service.AliasStore interface over Postgres
// for one alias kind (bookmaker or sport)
type AliasRepository struct {
	db   *database.DB
	kind string
}

// NewAliasRepository creates a new alias repository for the given kind
func NewAliasRepository(db *database.DB, kind string) *AliasRepository {
	return &AliasRepository{db: db, kind: kind}
}

// Load retrieves every alias of this kind
func (r *AliasRepository) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT alias, canonical FROM aliases WHERE kind = $1`, r.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s aliases: %w", r.kind, err)
	}
	defer rows.Close()

	aliases := make(map[string]string)
	for rows.Next() {
		var alias, canonical string
		if err := rows.Scan(&alias, &canonical); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases[alias] = canonical
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate aliases: %w", err)
	}

	return aliases, nil
}

// Save atomically replaces every alias of this kind with the given map
func (r *AliasRepository) Save(ctx context.Context, aliases map[string]string) error {
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM aliases WHERE kind = $1`, r.kind); err != nil {
			return err
		}
		for alias, canonical := range aliases {
			_, err := tx.Exec(ctx,
				`INSERT INTO aliases (kind, alias, canonical) VALUES ($1, $2, $3)`,
				r.kind, alias, canonical,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewPersistenceError("save aliases", err)
	}

	return nil
}
