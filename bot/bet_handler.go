package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"kellybook/kelly"
	"kellybook/models"
)

// handleNewBet handles the /newbet slash command: parse the bet string,
// compute a stake recommendation, and park the draft behind confirm buttons.
func (b *Bot) handleNewBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)

	betString := stringOption(options, "betstring")
	var commission *float64
	if value, ok := numberOption(options, "commission"); ok {
		commission = &value
	}

	input, err := b.parser.Parse(betString)
	if err != nil {
		log.WithError(err).WithField("betString", betString).Warn("Failed to parse bet string")
		b.respondWithError(s, i, fmt.Sprintf("Processing failed: %v\nString: `%s`", err, betString))
		return
	}

	prepared, err := b.betService.Initiate(ctx, input, commission)
	if err != nil {
		log.WithError(err).Error("Failed to initiate bet")
		b.respondWithError(s, i, "Unable to prepare bet. Please try again.")
		return
	}

	if prepared.RecommendedStake <= 0 {
		reason := prepared.CalculationError
		if reason == "" {
			reason = "Low or negative EV."
		}
		b.respond(s, i, fmt.Sprintf("**Parsed OK, but recommended stake is %s.**\nReason: %s\nBet not initiated.",
			FormatMoney(0), reason))
		return
	}

	token := b.drafts.Put(interactionUserID(i), i.ChannelID, *prepared)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildDraftEmbed(prepared)},
			Components: buildDraftButtons(token),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to newbet command")
	}
}

// handleBetInteraction handles draft confirmation buttons and the custom
// stake modal
func (b *Bot) handleBetInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "bet_confirm_"):
			b.handleConfirmStake(s, i, strings.TrimPrefix(customID, "bet_confirm_"))
		case strings.HasPrefix(customID, "bet_partial_"):
			b.handlePartialStake(s, i, strings.TrimPrefix(customID, "bet_partial_"))
		case strings.HasPrefix(customID, "bet_calc_"):
			b.handleShowCalculation(s, i, strings.TrimPrefix(customID, "bet_calc_"))
		case strings.HasPrefix(customID, "bet_cancel_"):
			b.drafts.Remove(strings.TrimPrefix(customID, "bet_cancel_"))
			b.respond(s, i, "Bet cancelled.")
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if strings.HasPrefix(customID, "bet_stake_modal_") {
			b.handleStakeModal(s, i, strings.TrimPrefix(customID, "bet_stake_modal_"))
		}
	}
}

// handleConfirmStake places the draft at the recommended stake
func (b *Bot) handleConfirmStake(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	draft := b.drafts.Take(token)
	if draft == nil {
		b.respondWithError(s, i, "Session expired. Please start a new bet.")
		return
	}
	b.finalizeDraft(s, i, draft.Prepared, draft.Prepared.RecommendedStake)
}

// handlePartialStake opens a modal asking for a custom stake
func (b *Bot) handlePartialStake(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	if b.drafts.Get(token) == nil {
		b.respondWithError(s, i, "Session expired. Please start a new bet.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "bet_stake_modal_" + token,
			Title:    "Custom Stake",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "stake_input",
							Label:       "Stake amount",
							Style:       discordgo.TextInputShort,
							Placeholder: "e.g. 5.50",
							Required:    true,
							MaxLength:   12,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("Error showing stake modal")
	}
}

// handleShowCalculation explains how the recommendation was derived
func (b *Bot) handleShowCalculation(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	draft := b.drafts.Get(token)
	if draft == nil {
		b.respondWithError(s, i, "Session expired. Please start a new bet.")
		return
	}

	bankroll, err := b.bankrollService.Current(context.Background())
	if err != nil {
		log.WithError(err).Error("Failed to get bankroll for calculation display")
		b.respondWithError(s, i, "Unable to fetch bankroll. Please try again.")
		return
	}

	explanation := kelly.Explain(bankroll, draft.Prepared.Input.BackOdds,
		draft.Prepared.Input.FairOdds, draft.Prepared.RecommendedStake)
	b.respond(s, i, explanation)
}

// handleStakeModal finalizes a draft with the stake entered in the modal
func (b *Bot) handleStakeModal(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	draft := b.drafts.Take(token)
	if draft == nil {
		b.respondWithError(s, i, "Session expired. Please start a new bet.")
		return
	}

	raw := modalInputValue(i, "stake_input")
	stake, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || stake <= 0 {
		b.respondWithError(s, i, fmt.Sprintf("Invalid stake %q. Please enter a positive number.", raw))
		return
	}

	b.finalizeDraft(s, i, draft.Prepared, stake)
}

func (b *Bot) finalizeDraft(s *discordgo.Session, i *discordgo.InteractionCreate, prepared models.PreparedBet, stake float64) {
	ctx := context.Background()

	bet, err := b.betService.Finalize(ctx, prepared, stake)
	if err != nil {
		log.WithError(err).Error("Failed to finalize bet")
		b.respondWithError(s, i, fmt.Sprintf("Unable to place bet: %v", err))
		return
	}

	bankroll, err := b.bankrollService.Current(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to get bankroll after placing bet")
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildBetPlacedEmbed(bet, bankroll)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding with placed bet")
	}
}

// modalInputValue extracts a text input value from a modal submission
func modalInputValue(i *discordgo.InteractionCreate, customID string) string {
	for _, comp := range i.ModalSubmitData().Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if textInput, ok := inner.(*discordgo.TextInput); ok && textInput.CustomID == customID {
				return textInput.Value
			}
		}
	}
	return ""
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
