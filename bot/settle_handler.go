package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"kellybook/models"
)

// handleEditBet handles the /editbet slash command
func (b *Bot) handleEditBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)

	betID := strings.ToUpper(strings.TrimSpace(stringOption(options, "betid")))
	fieldName := stringOption(options, "field")
	value := stringOption(options, "value")

	field, err := models.ParseEditField(fieldName)
	if err != nil {
		b.respondWithError(s, i, fmt.Sprintf("Unknown field %q.", fieldName))
		return
	}

	bet, err := b.betService.Edit(ctx, betID, field, value)
	if err != nil {
		b.respondWithError(s, i, editErrorMessage(betID, field, err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("✅ Updated `%s` on bet `%s`.", field, bet.ID),
			Embeds:  []*discordgo.MessageEmbed{buildBetDetailEmbed(bet)},
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding to editbet command")
	}
}

func editErrorMessage(betID string, field models.EditField, err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fmt.Sprintf("Bet `%s` not found.", betID)
	case errors.Is(err, models.ErrAlreadySettled):
		return fmt.Sprintf("Bet `%s` is already settled and can no longer be edited.", betID)
	case errors.Is(err, models.ErrInvalidStake):
		return "Stake must be a positive number."
	case errors.Is(err, models.ErrInvalidValue):
		return fmt.Sprintf("Invalid value for `%s`.", field)
	default:
		log.WithError(err).WithField("betID", betID).Error("Failed to edit bet")
		return "Unable to edit bet. Please try again."
	}
}

// handleSettleBet handles the /settlebet slash command
func (b *Bot) handleSettleBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)

	betID := strings.ToUpper(strings.TrimSpace(stringOption(options, "betid")))
	outcome := models.Outcome(stringOption(options, "result"))

	userReturn, hasReturn := numberOption(options, "userreturn")
	if outcome == models.OutcomePartWin && !hasReturn {
		b.respondWithError(s, i, "A return amount is required for a part-win settlement.")
		return
	}

	b.settleAndRespond(s, i, betID, outcome, userReturn)
}

// settleAndRespond runs the settlement and reports the ledger effect. Shared
// by the slash command and the pending-list buttons.
func (b *Bot) settleAndRespond(s *discordgo.Session, i *discordgo.InteractionCreate, betID string, outcome models.Outcome, userReturn float64) {
	result, err := b.betService.Settle(context.Background(), betID, outcome, userReturn)
	if err != nil {
		b.respondWithError(s, i, settleErrorMessage(betID, err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildSettleEmbed(result)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding with settlement")
	}
}

func settleErrorMessage(betID string, err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fmt.Sprintf("Bet `%s` not found.", betID)
	case errors.Is(err, models.ErrAlreadySettled):
		return fmt.Sprintf("Bet `%s` is already settled. Unsettle it first to change the result.", betID)
	case errors.Is(err, models.ErrInvalidOdds):
		return fmt.Sprintf("Bet `%s` has back odds of 1 or less; correct the odds before settling as a win.", betID)
	case errors.Is(err, models.ErrInvalidReturn):
		return "Return amount must be zero or more."
	case errors.Is(err, models.ErrUnknownOutcome):
		return "Unknown settlement result."
	default:
		log.WithError(err).WithField("betID", betID).Error("Failed to settle bet")
		return "Unable to settle bet. Please try again."
	}
}

// handleUnsettleBet handles the /unsettlebet slash command
func (b *Bot) handleUnsettleBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)

	betID := strings.ToUpper(strings.TrimSpace(stringOption(options, "betid")))

	bet, err := b.betService.Unsettle(ctx, betID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			b.respondWithError(s, i, fmt.Sprintf("Bet `%s` not found.", betID))
		case errors.Is(err, models.ErrAlreadyPending):
			b.respondWithError(s, i, fmt.Sprintf("Bet `%s` is still pending.", betID))
		default:
			log.WithError(err).WithField("betID", betID).Error("Failed to unsettle bet")
			b.respondWithError(s, i, "Unable to unsettle bet. Please try again.")
		}
		return
	}

	bankroll, err := b.bankrollService.Current(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to get bankroll after unsettling bet")
	}

	b.respond(s, i, fmt.Sprintf("↩️ Bet `%s` is pending again. Its settlement has been reversed.\nBankroll: **%s**",
		bet.ID, FormatMoney(bankroll)))
}

// handleSettleInteraction handles the per-bet settle buttons attached to the
// pending list, plus the part-win return modal they can open.
func (b *Bot) handleSettleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "settle_win_"):
			b.settleAndRespond(s, i, strings.TrimPrefix(customID, "settle_win_"), models.OutcomeWin, 0)
		case strings.HasPrefix(customID, "settle_loss_"):
			b.settleAndRespond(s, i, strings.TrimPrefix(customID, "settle_loss_"), models.OutcomeLoss, 0)
		case strings.HasPrefix(customID, "settle_push_"):
			b.settleAndRespond(s, i, strings.TrimPrefix(customID, "settle_push_"), models.OutcomePush, 0)
		case strings.HasPrefix(customID, "settle_partwin_"):
			b.showPartWinModal(s, i, strings.TrimPrefix(customID, "settle_partwin_"))
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if strings.HasPrefix(customID, "partwin_modal_") {
			b.handlePartWinModal(s, i, strings.TrimPrefix(customID, "partwin_modal_"))
		}
	}
}

func (b *Bot) showPartWinModal(s *discordgo.Session, i *discordgo.InteractionCreate, betID string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "partwin_modal_" + betID,
			Title:    "Part-Win Return",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "return_input",
							Label:       "Total amount returned (stake included)",
							Style:       discordgo.TextInputShort,
							Placeholder: "e.g. 140.00",
							Required:    true,
							MaxLength:   12,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("Error showing part-win modal")
	}
}

func (b *Bot) handlePartWinModal(s *discordgo.Session, i *discordgo.InteractionCreate, betID string) {
	raw := modalInputValue(i, "return_input")
	userReturn, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || userReturn < 0 {
		b.respondWithError(s, i, fmt.Sprintf("Invalid return amount %q. Please enter zero or a positive number.", raw))
		return
	}

	b.settleAndRespond(s, i, betID, models.OutcomePartWin, userReturn)
}
