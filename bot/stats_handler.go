package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"kellybook/models"
)

// Discord caps action rows per message; each pending bet needs one row of
// settle buttons, so only this many get buttons attached.
const maxPendingButtonRows = 5

// handlePendingBets handles the /pendingbets slash command
func (b *Bot) handlePendingBets(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)

	bookmaker := strings.TrimSpace(stringOption(options, "bookmaker"))
	sport := strings.TrimSpace(stringOption(options, "sport"))

	pending, err := b.betService.Pending(context.Background())
	if err != nil {
		log.WithError(err).Error("Failed to list pending bets")
		b.respondWithError(s, i, "Unable to load pending bets. Please try again.")
		return
	}

	filtered := pending[:0:0]
	for _, bet := range pending {
		if bookmaker != "" && !strings.EqualFold(bet.Bookmaker, bookmaker) {
			continue
		}
		if sport != "" && !strings.EqualFold(bet.Sport, sport) {
			continue
		}
		filtered = append(filtered, bet)
	}

	if len(filtered) == 0 {
		b.respond(s, i, "No pending bets match.")
		return
	}

	var components []discordgo.MessageComponent
	for idx, bet := range filtered {
		if idx >= maxPendingButtonRows {
			break
		}
		components = append(components, buildSettleButtons(bet.ID))
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildPendingEmbed(filtered, maxPendingButtonRows)},
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to pendingbets command")
	}
}

// handleStats handles the /stats slash command
func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)

	filter := models.StatsFilter{
		TimeRange:   models.TimeRange(stringOption(options, "time")),
		Sport:       strings.TrimSpace(stringOption(options, "sport")),
		Bookmaker:   strings.TrimSpace(stringOption(options, "bookmaker")),
		IncludeBets: boolOption(options, "showdetails"),
	}

	summary, err := b.statsService.Stats(context.Background(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to compute stats")
		b.respondWithError(s, i, "Unable to compute stats. Please try again.")
		return
	}

	embeds := []*discordgo.MessageEmbed{buildStatsEmbed(summary, filter)}
	if filter.IncludeBets && len(summary.Bets) > 0 {
		embeds = append(embeds, buildStatsDetailEmbed(summary.Bets))
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to stats command")
	}
}

// handleBankroll handles the /bankroll slash command: view, or overwrite when
// the set option is given.
func (b *Bot) handleBankroll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)

	if value, ok := numberOption(options, "set"); ok {
		if err := b.bankrollService.SetBankroll(ctx, value); err != nil {
			log.WithError(err).Error("Failed to set bankroll")
			b.respondWithError(s, i, "Unable to set bankroll. Please try again.")
			return
		}
		b.respond(s, i, fmt.Sprintf("💰 Bankroll set to **%s**.", FormatMoney(value)))
		return
	}

	bankroll, err := b.bankrollService.Current(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to get bankroll")
		b.respondWithError(s, i, "Unable to fetch bankroll. Please try again.")
		return
	}
	b.respond(s, i, fmt.Sprintf("💰 Current bankroll: **%s**", FormatMoney(bankroll)))
}
