package testutil

import (
	"time"

	"kellybook/models"
)

// CreateTestBet creates a pending test bet with default values
func CreateTestBet(id string) models.Bet {
	return models.Bet{
		ID:        id,
		Bookmaker: "Bet365",
		Sport:     "Football",
		BetName:   "Test bet " + id,
		BackOdds:  2.0,
		FairOdds:  1.8,
		Stake:     100,
		Status:    models.BetStatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// CreateSettledTestBet creates a settled test bet
func CreateSettledTestBet(id string, status models.BetStatus, profitLoss float64) models.Bet {
	bet := CreateTestBet(id)
	bet.Status = status
	bet.ProfitLoss = &profitLoss
	return bet
}
