package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"kellybook/events"
	"kellybook/kelly"
	"kellybook/models"
)

const (
	betIDLength      = 5
	betIDMaxAttempts = 1000
	betIDAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type betService struct {
	// mu serializes every mutating lifecycle operation. Each operation is
	// a read-compute-write sequence over two stores, so interleaving two
	// of them can lose updates.
	mu sync.Mutex

	bets     BetStore
	bankroll BankrollService
	bus      *events.Bus
	now      func() time.Time
}

// NewBetService creates a new bet lifecycle service
func NewBetService(bets BetStore, bankroll BankrollService, bus *events.Bus) BetService {
	return &betService{
		bets:     bets,
		bankroll: bankroll,
		bus:      bus,
		now:      time.Now,
	}
}

func (s *betService) Initiate(ctx context.Context, input models.BetInput, commission *float64) (*models.PreparedBet, error) {
	prepared := &models.PreparedBet{Input: input}

	// Only a commission inside [0, 100] is carried onto the bet
	if commission != nil && *commission >= 0 && *commission <= 100 {
		c := *commission
		prepared.Commission = &c
	}

	if input.BackOdds <= 1 || input.FairOdds <= 1 ||
		math.IsNaN(input.BackOdds) || math.IsNaN(input.FairOdds) {
		prepared.CalculationError = fmt.Sprintf(
			"Invalid odds (Back: %v, Fair: %v). Must be > 1.", input.BackOdds, input.FairOdds)
		return prepared, nil
	}

	bankroll, err := s.bankroll.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bankroll for stake calculation: %w", err)
	}

	prepared.RecommendedStake = kelly.Stake(bankroll, input.BackOdds, input.FairOdds)
	return prepared, nil
}

func (s *betService) Finalize(ctx context.Context, prepared models.PreparedBet, stake float64) (*models.Bet, error) {
	if stake <= 0 || math.IsNaN(stake) || math.IsInf(stake, 0) {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidStake, stake)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.bankroll.Deduct(ctx, stake, "bet placed"); err != nil {
		return nil, fmt.Errorf("failed to deduct stake, bet not created: %w", err)
	}

	id, err := s.generateBetID(ctx)
	if err != nil {
		// The stake is already gone from the bankroll, put it back
		s.compensate(ctx, "finalize", "", -stake, err)
		return nil, err
	}

	bet := models.Bet{
		ID:         id,
		Bookmaker:  prepared.Input.Bookmaker,
		Sport:      prepared.Input.Sport,
		BetName:    prepared.Input.BetName,
		BackOdds:   prepared.Input.BackOdds,
		FairOdds:   prepared.Input.FairOdds,
		Commission: prepared.Commission,
		Stake:      stake,
		Status:     models.BetStatusPending,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.bets.Create(ctx, bet); err != nil {
		s.compensate(ctx, "finalize", bet.ID, -stake, err)
		return nil, fmt.Errorf("failed to save bet %s after deducting stake: %w", bet.ID, err)
	}

	log.WithFields(log.Fields{
		"betID": bet.ID,
		"stake": stake,
	}).Info("Bet created")

	if s.bus != nil {
		s.bus.Emit(ctx, events.BetFinalizedEvent{Bet: bet})
	}

	return &bet, nil
}

func (s *betService) Edit(ctx context.Context, betID string, field models.EditField, value string) (*models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bet, err := s.bets.Find(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("%w: bet %s", models.ErrNotFound, betID)
	}
	if bet.IsSettled() {
		return nil, fmt.Errorf("%w: bet %s", models.ErrAlreadySettled, betID)
	}

	changed, err := applyEdit(bet, field, value)
	if err != nil {
		return nil, err
	}
	if !changed {
		log.WithField("betID", betID).Debug("No changes detected, save skipped")
		return bet, nil
	}

	if err := s.bets.Update(ctx, *bet); err != nil {
		return nil, fmt.Errorf("failed to save bet updates: %w", err)
	}

	log.WithFields(log.Fields{
		"betID": betID,
		"field": field,
	}).Info("Bet updated")

	return bet, nil
}

// applyEdit mutates a single field on the bet, reporting whether the value
// actually changed. An empty commission value removes the field.
func applyEdit(bet *models.Bet, field models.EditField, value string) (bool, error) {
	trimmed := strings.TrimSpace(value)

	if field == models.EditFieldCommission && trimmed == "" {
		if bet.Commission == nil {
			return false, nil
		}
		bet.Commission = nil
		log.WithField("betID", bet.ID).Info("Removed commission from bet")
		return true, nil
	}

	if field.IsNumeric() {
		num, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not numeric for field %s", models.ErrInvalidValue, value, field)
		}
		switch field {
		case models.EditFieldBackOdds:
			if num <= 1 {
				log.WithFields(log.Fields{"betID": bet.ID, "backOdds": num}).Warn("Editing back odds to a value <= 1")
			}
			if bet.BackOdds == num {
				return false, nil
			}
			bet.BackOdds = num
		case models.EditFieldFairOdds:
			if num <= 1 {
				log.WithFields(log.Fields{"betID": bet.ID, "fairOdds": num}).Warn("Editing fair odds to a value <= 1")
			}
			if bet.FairOdds == num {
				return false, nil
			}
			bet.FairOdds = num
		case models.EditFieldStake:
			if num <= 0 {
				return false, fmt.Errorf("%w: stake must be positive", models.ErrInvalidValue)
			}
			if bet.Stake == num {
				return false, nil
			}
			bet.Stake = num
		case models.EditFieldCommission:
			if num < 0 || num > 100 {
				return false, fmt.Errorf("%w: commission must be between 0 and 100", models.ErrInvalidValue)
			}
			if bet.Commission != nil && *bet.Commission == num {
				return false, nil
			}
			bet.Commission = &num
		}
		return true, nil
	}

	if trimmed == "" {
		return false, fmt.Errorf("%w: empty value for field %s", models.ErrInvalidValue, field)
	}
	switch field {
	case models.EditFieldBookmaker:
		if bet.Bookmaker == trimmed {
			return false, nil
		}
		bet.Bookmaker = trimmed
	case models.EditFieldSport:
		if bet.Sport == trimmed {
			return false, nil
		}
		bet.Sport = trimmed
	case models.EditFieldBetName:
		if bet.BetName == trimmed {
			return false, nil
		}
		bet.BetName = trimmed
	default:
		return false, fmt.Errorf("%w: %s", models.ErrInvalidField, field)
	}
	return true, nil
}

func (s *betService) Settle(ctx context.Context, betID string, outcome models.Outcome, userReturn float64) (*models.SettleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bet, err := s.bets.Find(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("%w: bet %s", models.ErrNotFound, betID)
	}
	if bet.IsSettled() {
		return nil, fmt.Errorf("%w: bet %s", models.ErrAlreadySettled, betID)
	}

	rate := bet.CommissionRate()

	var credit, profitLoss float64
	var partialReturn *float64

	switch outcome {
	case models.OutcomeWin:
		if bet.BackOdds <= 1 {
			return nil, fmt.Errorf("%w: back odds invalid for win settlement", models.ErrInvalidOdds)
		}
		net := bet.NetWinnings()
		credit = bet.Stake + net
		profitLoss = net
	case models.OutcomeLoss:
		credit = 0
		profitLoss = -bet.Stake
	case models.OutcomePush:
		credit = bet.Stake
		profitLoss = 0
	case models.OutcomePartWin:
		if userReturn < 0 || math.IsNaN(userReturn) || math.IsInf(userReturn, 0) {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidReturn, userReturn)
		}
		profit := userReturn - bet.Stake
		commission := 0.0
		if profit > 0 {
			commission = profit * rate
		}
		credit = userReturn - commission
		profitLoss = profit - commission
		pr := credit
		partialReturn = &pr
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownOutcome, outcome)
	}

	newBankroll, err := s.applyBankrollDelta(ctx, credit, fmt.Sprintf("settle %s as %s", betID, outcome))
	if err != nil {
		return nil, fmt.Errorf("settlement failed for bet %s: %w", betID, err)
	}
	if credit == 0 {
		// A loss moves no money; the current bankroll still goes on the result
		if newBankroll, err = s.bankroll.Current(ctx); err != nil {
			return nil, fmt.Errorf("settlement failed for bet %s: %w", betID, err)
		}
	}

	updated := *bet
	updated.Status = outcome.Status()
	updated.ProfitLoss = &profitLoss
	updated.PartialReturn = partialReturn

	if err := s.bets.Update(ctx, updated); err != nil {
		if credit != 0 {
			s.compensate(ctx, "settle", betID, credit, err)
		}
		return nil, fmt.Errorf("settlement failed for bet %s: %w", betID, err)
	}

	log.WithFields(log.Fields{
		"betID":      betID,
		"outcome":    outcome,
		"profitLoss": profitLoss,
		"credit":     credit,
	}).Info("Bet settled")

	if s.bus != nil {
		s.bus.Emit(ctx, events.BetSettledEvent{
			Bet:        updated,
			Outcome:    outcome,
			ProfitLoss: profitLoss,
			Credit:     credit,
		})
	}

	return &models.SettleResult{
		Bet:         updated,
		Credit:      credit,
		ProfitLoss:  profitLoss,
		NewBankroll: newBankroll,
	}, nil
}

func (s *betService) Unsettle(ctx context.Context, betID string) (*models.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bet, err := s.bets.Find(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("%w: bet %s", models.ErrNotFound, betID)
	}
	if !bet.IsSettled() {
		return nil, fmt.Errorf("%w: bet %s", models.ErrAlreadyPending, betID)
	}

	// The adjustment is the negative of whatever the settlement credited
	var adjustment float64
	switch bet.Status {
	case models.BetStatusWin:
		net := bet.NetWinnings()
		if bet.ProfitLoss != nil {
			net = *bet.ProfitLoss
		}
		adjustment = -(bet.Stake + net)
	case models.BetStatusLoss:
		adjustment = 0
	case models.BetStatusPush:
		adjustment = -bet.Stake
	case models.BetStatusPartialWin:
		if bet.PartialReturn != nil {
			adjustment = -*bet.PartialReturn
		} else {
			log.WithField("betID", betID).Warn("Missing partial return on partial-win bet, reverting stake only")
			adjustment = -bet.Stake
		}
	default:
		return nil, fmt.Errorf("%w: cannot unsettle status %s", models.ErrUnknownOutcome, bet.Status)
	}

	priorStatus := bet.Status

	if _, err := s.applyBankrollDelta(ctx, adjustment, fmt.Sprintf("unsettle %s from %s", betID, priorStatus)); err != nil {
		return nil, fmt.Errorf("unsettlement failed for bet %s: %w", betID, err)
	}

	updated := *bet
	updated.Status = models.BetStatusPending
	updated.ProfitLoss = nil
	updated.PartialReturn = nil

	if err := s.bets.Update(ctx, updated); err != nil {
		if adjustment != 0 {
			s.compensate(ctx, "unsettle", betID, adjustment, err)
		}
		return nil, fmt.Errorf("unsettlement failed for bet %s: %w", betID, err)
	}

	log.WithFields(log.Fields{
		"betID":       betID,
		"priorStatus": priorStatus,
	}).Info("Bet unsettled")

	if s.bus != nil {
		s.bus.Emit(ctx, events.BetUnsettledEvent{
			Bet:            updated,
			PriorStatus:    priorStatus,
			BankrollChange: adjustment,
		})
	}

	return &updated, nil
}

func (s *betService) Pending(ctx context.Context) ([]models.Bet, error) {
	all, err := s.bets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}

	pending := make([]models.Bet, 0)
	for _, bet := range all {
		if !bet.IsSettled() {
			pending = append(pending, bet)
		}
	}

	// Grouped by bookmaker for display
	sort.SliceStable(pending, func(i, j int) bool {
		return strings.ToLower(pending[i].Bookmaker) < strings.ToLower(pending[j].Bookmaker)
	})

	return pending, nil
}

func (s *betService) Find(ctx context.Context, betID string) (*models.Bet, error) {
	return s.bets.Find(ctx, betID)
}

// applyBankrollDelta routes a signed adjustment through the ledger. A zero
// delta is a valid no-op (loss settlements move no money). Negative deltas
// go through Add as debits: settlement reversals have no bankroll floor and
// must never be blocked by the insufficiency check on Deduct.
func (s *betService) applyBankrollDelta(ctx context.Context, delta float64, reason string) (float64, error) {
	if delta == 0 {
		return 0, nil
	}
	return s.bankroll.Add(ctx, delta, reason)
}

// compensate reverses a bankroll delta that was already applied before a
// later write failed. A failed compensation leaves the ledger and the bet
// store disagreeing, which is the one state this system cannot recover from
// on its own, so it is logged at error level and broadcast.
func (s *betService) compensate(ctx context.Context, op, betID string, delta float64, cause error) {
	reason := fmt.Sprintf("revert %s for %s", op, betID)
	var compErr error
	if delta != 0 {
		// Always a debit or credit through Add: a reversal must land even
		// when it takes the bankroll below zero.
		_, compErr = s.bankroll.Add(ctx, -delta, reason)
	}
	if compErr == nil {
		log.WithFields(log.Fields{
			"op":    op,
			"betID": betID,
		}).Warn("Reverted bankroll adjustment after persistence failure")
		return
	}

	inconsistency := &models.CriticalInconsistencyError{
		Op:            op,
		BetID:         betID,
		Adjustment:    delta,
		Cause:         cause,
		CompensateErr: compErr,
	}
	log.WithFields(log.Fields{
		"op":         op,
		"betID":      betID,
		"adjustment": delta,
	}).WithError(compErr).Error("Failed to revert bankroll adjustment, bankroll is inconsistent")

	if s.bus != nil {
		s.bus.Emit(ctx, events.CriticalInconsistencyEvent{
			Op:      op,
			BetID:   betID,
			Details: inconsistency.Error(),
		})
	}
}

// generateBetID produces a short uppercase alphanumeric ID that is not
// already in use.
func (s *betService) generateBetID(ctx context.Context) (string, error) {
	buf := make([]byte, betIDLength)
	for attempt := 0; attempt < betIDMaxAttempts; attempt++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate bet ID: %w", err)
		}
		for i := range buf {
			buf[i] = betIDAlphabet[int(buf[i])%len(betIDAlphabet)]
		}
		id := string(buf)

		existing, err := s.bets.Find(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check bet ID uniqueness: %w", err)
		}
		if existing == nil {
			return id, nil
		}
	}
	return "", models.ErrIDGeneration
}
