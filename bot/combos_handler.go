package bot

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"kellybook/accumulator"
)

// handleCombos handles the /combos slash command: the chosen type is carried
// in the modal ID while the selection blocks get pasted into the modal.
func (b *Bot) handleCombos(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := optionMap(i)

	typ, err := accumulator.ParseType(stringOption(options, "type"))
	if err != nil {
		b.respondWithError(s, i, "Unknown combination type.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "combos_modal_" + string(typ),
			Title:    "Selections",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: "selections_input",
							Label:    "Team name, then player lines (odds - fair)",
							Style:    discordgo.TextInputParagraph,
							Placeholder: "Liverpool FC\n" +
								"TAA 4.5 - 4.09\n" +
								"Cuenca 4.5 / 4.23\n" +
								"\n" +
								"Arsenal\n" +
								"Saka 2.0 - 1.9",
							Required: true,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("Error showing combinations modal")
	}
}

// handleCombosInteraction handles the selections modal submission
func (b *Bot) handleCombosInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionModalSubmit {
		return
	}
	customID := i.ModalSubmitData().CustomID
	if !strings.HasPrefix(customID, "combos_modal_") {
		return
	}

	typ, err := accumulator.ParseType(strings.TrimPrefix(customID, "combos_modal_"))
	if err != nil {
		b.respondWithError(s, i, "Unknown combination type.")
		return
	}

	selections, err := accumulator.ParseBlocks(modalInputValue(i, "selections_input"))
	if err != nil {
		if errors.Is(err, accumulator.ErrNoSelections) {
			b.respondWithError(s, i, "No valid selections found. Each block needs a team name line followed by player lines like `Saka 2.0 - 1.9`.")
			return
		}
		log.WithError(err).Error("Failed to parse combination selections")
		b.respondWithError(s, i, "Unable to read selections. Please try again.")
		return
	}

	combos := accumulator.Generate(selections, typ)
	if len(combos) == 0 {
		b.respond(s, i, fmt.Sprintf("No %s combinations available from those selections.", typ))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildCombosEmbed(typ, combos)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error responding with combinations")
	}
}

func buildCombosEmbed(typ accumulator.Type, combos []accumulator.Combination) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx, combo := range combos {
		if idx >= maxDetailLines {
			fmt.Fprintf(&sb, "… and %d more\n", len(combos)-idx)
			break
		}
		fmt.Fprintf(&sb, "%d. %s | Combined Odds: %.2f\n",
			idx+1, strings.Join(combo.Names(), " & "), combo.CombinedOdds)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Combinations (Ordered by Combined Book Odds)", capitalize(string(typ))),
		Color:       ColorPrimary,
		Description: sb.String(),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
