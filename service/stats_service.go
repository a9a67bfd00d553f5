package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

type statsService struct {
	bets     BetStore
	bankroll BankrollService
	now      func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(bets BetStore, bankroll BankrollService) StatsService {
	return &statsService{
		bets:     bets,
		bankroll: bankroll,
		now:      time.Now,
	}
}

func (s *statsService) Stats(ctx context.Context, filter models.StatsFilter) (*models.StatsSummary, error) {
	all, err := s.bets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}

	filtered := make([]models.Bet, 0, len(all))
	for _, bet := range all {
		if s.matches(bet, filter) {
			filtered = append(filtered, bet)
		}
	}

	summary := &models.StatsSummary{
		TotalBets: len(filtered),
	}

	for _, bet := range filtered {
		if !bet.IsSettled() {
			continue
		}
		summary.SettledBets++
		summary.TotalStake += bet.Stake

		switch bet.Status {
		case models.BetStatusWin:
			summary.Wins++
			summary.TotalProfitLoss += profitLossOf(bet)
		case models.BetStatusLoss:
			summary.Losses++
			summary.TotalProfitLoss += profitLossOf(bet)
		case models.BetStatusPush:
			summary.Pushes++
		case models.BetStatusPartialWin:
			summary.PartialWins++
			summary.TotalProfitLoss += profitLossOf(bet)
		}
	}

	if summary.TotalStake > 0 {
		summary.ROI = summary.TotalProfitLoss / summary.TotalStake
	}

	bankroll, err := s.bankroll.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bankroll: %w", err)
	}
	summary.Bankroll = bankroll

	if filter.IncludeBets {
		summary.Bets = filtered
	}

	log.WithFields(log.Fields{
		"timeRange": filter.TimeRange,
		"sport":     filter.Sport,
		"bookmaker": filter.Bookmaker,
		"totalBets": summary.TotalBets,
		"settled":   summary.SettledBets,
	}).Debug("Computed stats")

	return summary, nil
}

func (s *statsService) matches(bet models.Bet, filter models.StatsFilter) bool {
	if filter.Sport != "" && !strings.EqualFold(bet.Sport, filter.Sport) {
		return false
	}
	if filter.Bookmaker != "" && !strings.EqualFold(bet.Bookmaker, filter.Bookmaker) {
		return false
	}

	if filter.TimeRange == "" {
		return true
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time
	switch filter.TimeRange {
	case models.TimeRangeToday:
		start, end = midnight, now
	case models.TimeRangeYesterday:
		start, end = midnight.Add(-24*time.Hour), midnight
	case models.TimeRange7Days:
		start, end = now.Add(-7*24*time.Hour), now
	case models.TimeRangeLastMonth:
		start, end = now.Add(-30*24*time.Hour), now
	default:
		// An unrecognised range applies no time filter
		return true
	}

	t := bet.CreatedAt
	return !t.Before(start) && t.Before(end)
}

// profitLossOf prefers the profit stored at settlement, reconstructing it
// from the bet's fields only when a legacy record is missing it.
func profitLossOf(bet models.Bet) float64 {
	if bet.ProfitLoss != nil {
		return *bet.ProfitLoss
	}
	switch bet.Status {
	case models.BetStatusWin:
		return bet.NetWinnings()
	case models.BetStatusLoss:
		return -bet.Stake
	case models.BetStatusPartialWin:
		if bet.PartialReturn != nil {
			return *bet.PartialReturn - bet.Stake
		}
	}
	return 0
}
