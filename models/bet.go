package models

import "time"

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusPending    BetStatus = "pending"
	BetStatusWin        BetStatus = "win"
	BetStatusLoss       BetStatus = "loss"
	BetStatusPush       BetStatus = "push"
	BetStatusPartialWin BetStatus = "partial-win"
)

// Outcome is the settlement result supplied by the caller
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomePush    Outcome = "push"
	OutcomePartWin Outcome = "part-win"
)

// Status returns the bet status a settlement outcome maps to
func (o Outcome) Status() BetStatus {
	if o == OutcomePartWin {
		return BetStatusPartialWin
	}
	return BetStatus(o)
}

// Bet represents a single wagered opportunity
type Bet struct {
	ID            string    `json:"id" db:"id"`
	Bookmaker     string    `json:"bookmaker" db:"bookmaker"`
	Sport         string    `json:"sport" db:"sport"`
	BetName       string    `json:"betName" db:"bet_name"`
	BackOdds      float64   `json:"backOdds" db:"back_odds"`
	FairOdds      float64   `json:"fairOdds" db:"fair_odds"`
	Commission    *float64  `json:"commission,omitempty" db:"commission"` // percent of profit, absent = 0
	Stake         float64   `json:"stake" db:"stake"`
	Status        BetStatus `json:"status" db:"status"`
	ProfitLoss    *float64  `json:"profitLoss,omitempty" db:"profit_loss"`
	PartialReturn *float64  `json:"partialReturn,omitempty" db:"partial_return"`
	CreatedAt     time.Time `json:"timestamp" db:"created_at"`
}

// IsSettled reports whether the bet has reached a terminal status
func (b *Bet) IsSettled() bool {
	return b.Status != BetStatusPending
}

// CommissionRate returns the commission as a fraction of profit (0.05 for 5%)
func (b *Bet) CommissionRate() float64 {
	if b.Commission != nil && *b.Commission > 0 {
		return *b.Commission / 100
	}
	return 0
}

// NetWinnings computes the commission-adjusted winnings for a win settlement.
// Used when the stored profitLoss is unavailable and the credit has to be
// reconstructed from odds, stake and commission.
func (b *Bet) NetWinnings() float64 {
	gross := b.Stake * (b.BackOdds - 1)
	if gross > 0 {
		return gross - gross*b.CommissionRate()
	}
	return gross
}

// BetInput is the structured tuple produced by the parsing collaborator
type BetInput struct {
	Bookmaker string
	Sport     string
	BetName   string
	BackOdds  float64
	FairOdds  float64
}

// PreparedBet is the output of the initiate step: the input, the optional
// commission, and either a stake recommendation or the reason one could not
// be computed.
type PreparedBet struct {
	Input            BetInput
	Commission       *float64
	RecommendedStake float64
	CalculationError string
}

// SettleResult describes the ledger effect of settling a bet
type SettleResult struct {
	Bet         Bet
	Credit      float64
	ProfitLoss  float64
	NewBankroll float64
}
