package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kellybook/models"
)

// Standard embed colors
const (
	ColorPrimary = 0x5865F2 // Blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
)

// FormatMoney formats an amount as GBP with two decimals
func FormatMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-£%.2f", -amount)
	}
	return fmt.Sprintf("£%.2f", amount)
}

// FormatSignedMoney formats a profit/loss figure with an explicit sign
func FormatSignedMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-£%.2f", -amount)
	}
	return fmt.Sprintf("+£%.2f", amount)
}

func buildDraftEmbed(prepared *models.PreparedBet) *discordgo.MessageEmbed {
	commission := "None"
	if prepared.Commission != nil {
		commission = fmt.Sprintf("%.2f%%", *prepared.Commission)
	}

	return &discordgo.MessageEmbed{
		Title: "New Bet",
		Color: ColorPrimary,
		Description: fmt.Sprintf("**%s**\nRecommended stake: **%s**\nPlace at this stake?",
			prepared.Input.BetName, FormatMoney(prepared.RecommendedStake)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bookmaker", Value: prepared.Input.Bookmaker, Inline: true},
			{Name: "Sport", Value: prepared.Input.Sport, Inline: true},
			{Name: "Commission", Value: commission, Inline: true},
			{Name: "Back Odds", Value: fmt.Sprintf("%g", prepared.Input.BackOdds), Inline: true},
			{Name: "Fair Odds", Value: fmt.Sprintf("%g", prepared.Input.FairOdds), Inline: true},
		},
	}
}

func buildDraftButtons(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, full stake",
					Style:    discordgo.SuccessButton,
					CustomID: "bet_confirm_" + token,
				},
				discordgo.Button{
					Label:    "No, partial stake",
					Style:    discordgo.PrimaryButton,
					CustomID: "bet_partial_" + token,
				},
				discordgo.Button{
					Label:    "Show calculation",
					Style:    discordgo.SecondaryButton,
					CustomID: "bet_calc_" + token,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.DangerButton,
					CustomID: "bet_cancel_" + token,
				},
			},
		},
	}
}

func buildBetPlacedEmbed(bet *models.Bet, bankroll float64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Bet Placed",
		Color:       ColorSuccess,
		Description: fmt.Sprintf("**%s**", bet.BetName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bet ID", Value: fmt.Sprintf("`%s`", bet.ID), Inline: true},
			{Name: "Stake", Value: FormatMoney(bet.Stake), Inline: true},
			{Name: "Back Odds", Value: fmt.Sprintf("%g", bet.BackOdds), Inline: true},
			{Name: "Bookmaker", Value: bet.Bookmaker, Inline: true},
			{Name: "Sport", Value: bet.Sport, Inline: true},
			{Name: "Bankroll", Value: FormatMoney(bankroll), Inline: true},
		},
	}
}

func buildBetDetailEmbed(bet *models.Bet) *discordgo.MessageEmbed {
	commission := "None"
	if bet.Commission != nil {
		commission = fmt.Sprintf("%.2f%%", *bet.Commission)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Bet %s", bet.ID),
		Color:       ColorPrimary,
		Description: fmt.Sprintf("**%s**", bet.BetName),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bookmaker", Value: bet.Bookmaker, Inline: true},
			{Name: "Sport", Value: bet.Sport, Inline: true},
			{Name: "Status", Value: string(bet.Status), Inline: true},
			{Name: "Back Odds", Value: fmt.Sprintf("%g", bet.BackOdds), Inline: true},
			{Name: "Fair Odds", Value: fmt.Sprintf("%g", bet.FairOdds), Inline: true},
			{Name: "Stake", Value: FormatMoney(bet.Stake), Inline: true},
			{Name: "Commission", Value: commission, Inline: true},
		},
	}
}

func buildSettleEmbed(result *models.SettleResult) *discordgo.MessageEmbed {
	color := ColorSuccess
	if result.ProfitLoss < 0 {
		color = ColorDanger
	} else if result.ProfitLoss == 0 {
		color = ColorWarning
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Bet Settled: %s", strings.ToUpper(string(result.Bet.Status))),
		Color:       color,
		Description: fmt.Sprintf("**%s** (`%s`)", result.Bet.BetName, result.Bet.ID),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stake", Value: FormatMoney(result.Bet.Stake), Inline: true},
			{Name: "Returned", Value: FormatMoney(result.Credit), Inline: true},
			{Name: "P/L", Value: FormatSignedMoney(result.ProfitLoss), Inline: true},
			{Name: "Bankroll", Value: FormatMoney(result.NewBankroll), Inline: true},
		},
	}
}

func buildSettleButtons(betID string) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    betID + " Win",
				Style:    discordgo.SuccessButton,
				CustomID: "settle_win_" + betID,
			},
			discordgo.Button{
				Label:    betID + " Loss",
				Style:    discordgo.DangerButton,
				CustomID: "settle_loss_" + betID,
			},
			discordgo.Button{
				Label:    betID + " Push",
				Style:    discordgo.SecondaryButton,
				CustomID: "settle_push_" + betID,
			},
			discordgo.Button{
				Label:    betID + " Part-Win",
				Style:    discordgo.PrimaryButton,
				CustomID: "settle_partwin_" + betID,
			},
		},
	}
}

func buildPendingEmbed(bets []models.Bet, buttonRows int) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, bet := range bets {
		fmt.Fprintf(&sb, "`%s` **%s** — %s / %s, %s @ %g\n",
			bet.ID, bet.BetName, bet.Bookmaker, bet.Sport, FormatMoney(bet.Stake), bet.BackOdds)
	}
	if len(bets) > buttonRows {
		fmt.Fprintf(&sb, "\nButtons shown for the first %d bets; use /settlebet for the rest.", buttonRows)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Pending Bets (%d)", len(bets)),
		Color:       ColorPrimary,
		Description: sb.String(),
	}
}

func buildStatsEmbed(summary *models.StatsSummary, filter models.StatsFilter) *discordgo.MessageEmbed {
	title := "Betting Stats"
	if filter.TimeRange != models.TimeRangeAll {
		title = fmt.Sprintf("Betting Stats (%s)", filter.TimeRange)
	}

	scope := make([]string, 0, 2)
	if filter.Sport != "" {
		scope = append(scope, "Sport: "+filter.Sport)
	}
	if filter.Bookmaker != "" {
		scope = append(scope, "Bookmaker: "+filter.Bookmaker)
	}

	color := ColorSuccess
	if summary.TotalProfitLoss < 0 {
		color = ColorDanger
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Color:       color,
		Description: strings.Join(scope, " • "),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bets", Value: fmt.Sprintf("%d (%d settled)", summary.TotalBets, summary.SettledBets), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW / %dL / %dP / %dPW",
				summary.Wins, summary.Losses, summary.Pushes, summary.PartialWins), Inline: true},
			{Name: "Staked", Value: FormatMoney(summary.TotalStake), Inline: true},
			{Name: "P/L", Value: FormatSignedMoney(summary.TotalProfitLoss), Inline: true},
			{Name: "ROI", Value: fmt.Sprintf("%.2f%%", summary.ROI*100), Inline: true},
			{Name: "Bankroll", Value: FormatMoney(summary.Bankroll), Inline: true},
		},
	}
	return embed
}

// Discord rejects embed descriptions past this length
const maxDetailLines = 25

func buildStatsDetailEmbed(bets []models.Bet) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx, bet := range bets {
		if idx >= maxDetailLines {
			fmt.Fprintf(&sb, "… and %d more\n", len(bets)-idx)
			break
		}
		pl := "pending"
		if bet.ProfitLoss != nil {
			pl = FormatSignedMoney(*bet.ProfitLoss)
		}
		fmt.Fprintf(&sb, "`%s` %s — %s, %s: %s\n",
			bet.ID, bet.BetName, bet.Bookmaker, string(bet.Status), pl)
	}

	return &discordgo.MessageEmbed{
		Title:       "Details",
		Color:       ColorPrimary,
		Description: sb.String(),
	}
}
