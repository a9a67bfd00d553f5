package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwmarrin/discordgo"

	"kellybook/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "£3000.00", FormatMoney(3000))
	assert.Equal(t, "£5.50", FormatMoney(5.5))
	assert.Equal(t, "-£12.34", FormatMoney(-12.34))

	assert.Equal(t, "+£90.00", FormatSignedMoney(90))
	assert.Equal(t, "-£100.00", FormatSignedMoney(-100))
	assert.Equal(t, "+£0.00", FormatSignedMoney(0))
}

func TestBuildSettleEmbed_Colors(t *testing.T) {
	win := buildSettleEmbed(&models.SettleResult{
		Bet:        models.Bet{ID: "AB12C", Status: models.BetStatusWin},
		ProfitLoss: 90,
	})
	assert.Equal(t, ColorSuccess, win.Color)
	assert.Contains(t, win.Title, "WIN")

	loss := buildSettleEmbed(&models.SettleResult{
		Bet:        models.Bet{ID: "AB12C", Status: models.BetStatusLoss},
		ProfitLoss: -100,
	})
	assert.Equal(t, ColorDanger, loss.Color)

	push := buildSettleEmbed(&models.SettleResult{
		Bet:        models.Bet{ID: "AB12C", Status: models.BetStatusPush},
		ProfitLoss: 0,
	})
	assert.Equal(t, ColorWarning, push.Color)
}

func TestBuildPendingEmbed_TruncationNote(t *testing.T) {
	bets := make([]models.Bet, 7)
	for i := range bets {
		bets[i] = models.Bet{ID: "BET0" + string(rune('A'+i)), BetName: "Test", Bookmaker: "Bet365", Sport: "Football"}
	}

	embed := buildPendingEmbed(bets, maxPendingButtonRows)
	assert.Contains(t, embed.Title, "7")
	assert.Contains(t, embed.Description, "use /settlebet for the rest")

	short := buildPendingEmbed(bets[:2], maxPendingButtonRows)
	assert.NotContains(t, short.Description, "use /settlebet")
}

func TestBuildDraftButtons_CarryToken(t *testing.T) {
	rows := buildDraftButtons("tok123")
	require.Len(t, rows, 1)

	row, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 4)

	// every button routes back to the same draft
	for _, comp := range row.Components {
		button, ok := comp.(discordgo.Button)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(button.CustomID, "_tok123"), button.CustomID)
	}
}
