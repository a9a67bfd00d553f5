package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"kellybook/database"
	"kellybook/models"
)

// BankrollRepository implements the service.BankrollStore interface over
// Postgres. The bankroll lives in a single-row table; when the row is
// missing it is seeded with the configured default.
type BankrollRepository struct {
	q               queryable
	defaultBankroll float64
}

// NewBankrollRepository creates a new bankroll repository
func NewBankrollRepository(db *database.DB, defaultBankroll float64) *BankrollRepository {
	return &BankrollRepository{q: db.Pool, defaultBankroll: defaultBankroll}
}

// Get retrieves the current bankroll, seeding the default when unset
func (r *BankrollRepository) Get(ctx context.Context) (float64, error) {
	var amount float64
	err := r.q.QueryRow(ctx, `SELECT amount FROM bankroll WHERE id = 1`).Scan(&amount)
	if err == nil {
		return amount, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to get bankroll: %w", err)
	}

	log.WithField("default", r.defaultBankroll).Info("No bankroll stored, seeding default")
	if err := r.Set(ctx, r.defaultBankroll); err != nil {
		return 0, err
	}
	return r.defaultBankroll, nil
}

// Set overwrites the stored bankroll
func (r *BankrollRepository) Set(ctx context.Context, bankroll float64) error {
	query := `
		INSERT INTO bankroll (id, amount, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, bankroll); err != nil {
		return models.NewPersistenceError("save bankroll", err)
	}
	return nil
}
