package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kellybook/models"
)

func seedBet(id string, status models.BetStatus, stake float64, profitLoss *float64, createdAt time.Time) models.Bet {
	return models.Bet{
		ID:         id,
		Bookmaker:  "Bet365",
		Sport:      "Football",
		BetName:    "Seed bet " + id,
		BackOdds:   2.0,
		FairOdds:   1.8,
		Stake:      stake,
		Status:     status,
		ProfitLoss: profitLoss,
		CreatedAt:  createdAt,
	}
}

func newStatsFixture(t *testing.T, now time.Time, bets ...models.Bet) StatsService {
	t.Helper()
	ctx := context.Background()
	betStore := newMemBetStore()
	for _, bet := range bets {
		require.NoError(t, betStore.Create(ctx, bet))
	}
	svc := NewStatsService(betStore, NewBankrollService(newMemBankrollStore(3000), nil, 3000))
	svc.(*statsService).now = func() time.Time { return now }
	return svc
}

func TestStatsService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	svc := newStatsFixture(t, now,
		seedBet("WIN01", models.BetStatusWin, 100, floatPtr(90), now.Add(-time.Hour)),
		seedBet("LOS01", models.BetStatusLoss, 50, floatPtr(-50), now.Add(-2*time.Hour)),
		seedBet("PSH01", models.BetStatusPush, 25, floatPtr(0), now.Add(-3*time.Hour)),
		seedBet("PRT01", models.BetStatusPartialWin, 100, floatPtr(40), now.Add(-4*time.Hour)),
		seedBet("PND01", models.BetStatusPending, 75, nil, now.Add(-5*time.Hour)),
	)

	summary, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalBets)
	assert.Equal(t, 4, summary.SettledBets)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 1, summary.Pushes)
	assert.Equal(t, 1, summary.PartialWins)
	assert.Equal(t, 275.0, summary.TotalStake)
	assert.Equal(t, 80.0, summary.TotalProfitLoss)
	assert.InDelta(t, 80.0/275.0, summary.ROI, 1e-12)
	assert.Equal(t, 3000.0, summary.Bankroll)
	assert.Nil(t, summary.Bets)
}

func TestStatsService_ZeroROIWithoutSettledStake(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	svc := newStatsFixture(t, now,
		seedBet("PND01", models.BetStatusPending, 75, nil, now.Add(-time.Hour)),
	)

	summary, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.ROI)
	assert.Zero(t, summary.TotalProfitLoss)
}

func TestStatsService_SportAndBookmakerFilters(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	tennis := seedBet("TEN01", models.BetStatusWin, 100, floatPtr(90), now.Add(-time.Hour))
	tennis.Sport = "Tennis"
	tennis.Bookmaker = "Smarkets"

	svc := newStatsFixture(t, now,
		seedBet("FOO01", models.BetStatusLoss, 50, floatPtr(-50), now.Add(-time.Hour)),
		tennis,
	)

	summary, err := svc.Stats(ctx, models.StatsFilter{Sport: "tennis"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalBets)
	assert.Equal(t, 1, summary.Wins)

	summary, err = svc.Stats(ctx, models.StatsFilter{Bookmaker: "SMARKETS"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalBets)

	summary, err = svc.Stats(ctx, models.StatsFilter{Sport: "Tennis", Bookmaker: "Bet365"})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalBets)
}

func TestStatsService_TimeRanges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	svc := newStatsFixture(t, now,
		// 10:00 today
		seedBet("TOD01", models.BetStatusWin, 100, floatPtr(90), time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)),
		// 23:00 yesterday
		seedBet("YST01", models.BetStatusLoss, 50, floatPtr(-50), time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC)),
		// five days ago
		seedBet("WEK01", models.BetStatusPush, 25, floatPtr(0), time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)),
		// three weeks ago
		seedBet("MON01", models.BetStatusWin, 10, floatPtr(10), time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC)),
		// far in the past
		seedBet("OLD01", models.BetStatusLoss, 10, floatPtr(-10), time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	)

	tests := []struct {
		timeRange models.TimeRange
		wantIDs   []string
	}{
		{models.TimeRangeToday, []string{"TOD01"}},
		{models.TimeRangeYesterday, []string{"YST01"}},
		{models.TimeRange7Days, []string{"TOD01", "YST01", "WEK01"}},
		{models.TimeRangeLastMonth, []string{"TOD01", "YST01", "WEK01", "MON01"}},
		{models.TimeRange(""), []string{"TOD01", "YST01", "WEK01", "MON01", "OLD01"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.timeRange), func(t *testing.T) {
			summary, err := svc.Stats(ctx, models.StatsFilter{TimeRange: tc.timeRange, IncludeBets: true})
			require.NoError(t, err)

			ids := make([]string, 0, len(summary.Bets))
			for _, bet := range summary.Bets {
				ids = append(ids, bet.ID)
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
		})
	}
}

func TestStatsService_ReconstructsMissingProfitLoss(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	// Legacy win record without a stored profit, reconstructed from odds
	win := seedBet("WIN01", models.BetStatusWin, 100, nil, now.Add(-time.Hour))
	loss := seedBet("LOS01", models.BetStatusLoss, 50, nil, now.Add(-time.Hour))

	svc := newStatsFixture(t, now, win, loss)

	summary, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50.0, summary.TotalProfitLoss)
}
