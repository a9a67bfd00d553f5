package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kellybook/database"
	"kellybook/models"
)

// BetRepository implements the service.BetStore interface over Postgres
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

const betColumns = `id, bookmaker, sport, bet_name, back_odds, fair_odds, commission, stake, status, profit_loss, partial_return, created_at`

// List retrieves all bets, oldest first
func (r *BetRepository) List(ctx context.Context) ([]models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// Find retrieves a bet by ID, returning nil when it does not exist
func (r *BetRepository) Find(ctx context.Context, id string) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}

	return &bet, nil
}

// Create inserts a new bet
func (r *BetRepository) Create(ctx context.Context, bet models.Bet) error {
	query := `
		INSERT INTO bets (` + betColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.Exec(ctx, query,
		bet.ID, bet.Bookmaker, bet.Sport, bet.BetName,
		bet.BackOdds, bet.FairOdds, bet.Commission, bet.Stake,
		bet.Status, bet.ProfitLoss, bet.PartialReturn, bet.CreatedAt,
	)
	if err != nil {
		return models.NewPersistenceError("save bet", err)
	}

	return nil
}

// Update replaces the stored bet with the same ID
func (r *BetRepository) Update(ctx context.Context, bet models.Bet) error {
	query := `
		UPDATE bets
		SET bookmaker = $2, sport = $3, bet_name = $4, back_odds = $5,
		    fair_odds = $6, commission = $7, stake = $8, status = $9,
		    profit_loss = $10, partial_return = $11
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		bet.ID, bet.Bookmaker, bet.Sport, bet.BetName,
		bet.BackOdds, bet.FairOdds, bet.Commission, bet.Stake,
		bet.Status, bet.ProfitLoss, bet.PartialReturn,
	)
	if err != nil {
		return models.NewPersistenceError("save bet", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, bet.ID)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBet(row rowScanner) (models.Bet, error) {
	var bet models.Bet
	err := row.Scan(
		&bet.ID, &bet.Bookmaker, &bet.Sport, &bet.BetName,
		&bet.BackOdds, &bet.FairOdds, &bet.Commission, &bet.Stake,
		&bet.Status, &bet.ProfitLoss, &bet.PartialReturn, &bet.CreatedAt,
	)
	return bet, err
}
