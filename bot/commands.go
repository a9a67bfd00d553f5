package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	zero := 0.0
	hundred := 100.0

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "newbet",
			Description: "Create a new bet from a single input string",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "betstring",
					Description: "Full bet details (e.g., Bookie - Sport - Name - BackOdds / FairOdds)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "commission",
					Description: "Optional commission percentage applied to winnings (e.g., 5 for 5%)",
					Required:    false,
					MinValue:    &zero,
					MaxValue:    hundred,
				},
			},
		},
		{
			Name:        "editbet",
			Description: "Edit a pending bet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "betid",
					Description: "The 5-char bet ID (e.g. ABC12)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "field",
					Description: "Which field to edit",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "bookmaker", Value: "bookmaker"},
						{Name: "sport", Value: "sport"},
						{Name: "betName", Value: "betname"},
						{Name: "backOdds", Value: "backodds"},
						{Name: "fairOdds", Value: "fairodds"},
						{Name: "stake", Value: "stake"},
						{Name: "commission", Value: "commission"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "value",
					Description: "New value for the field (empty commission removes it)",
					Required:    true,
				},
			},
		},
		{
			Name:        "settlebet",
			Description: "Settle a pending bet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "betid",
					Description: "The 5-char bet ID (e.g. ABC12)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "result",
					Description: "Result of the bet",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Win", Value: "win"},
						{Name: "Loss", Value: "loss"},
						{Name: "Push/Void", Value: "push"},
						{Name: "Partial Win", Value: "part-win"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "userreturn",
					Description: "For partial wins, the total amount returned (stake+profit)",
					Required:    false,
				},
			},
		},
		{
			Name:        "unsettlebet",
			Description: "Revert a previously settled bet to pending status",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "betid",
					Description: "The 5-char bet ID (e.g. ABC12)",
					Required:    true,
				},
			},
		},
		{
			Name:        "pendingbets",
			Description: "List all unsettled bets, with optional filters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "bookmaker",
					Description: "Filter by bookmaker",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sport",
					Description: "Filter by sport",
					Required:    false,
				},
			},
		},
		{
			Name:        "stats",
			Description: "Show betting stats with optional filters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "time",
					Description: "Filter by time range",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Today", Value: "today"},
						{Name: "Yesterday", Value: "yesterday"},
						{Name: "Last 7 Days", Value: "7days"},
						{Name: "Last 30 Days", Value: "lastmonth"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sport",
					Description: "Filter by sport",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "bookmaker",
					Description: "Filter by bookmaker",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "showdetails",
					Description: "List matching settled bets below the summary",
					Required:    false,
				},
			},
		},
		{
			Name:        "bankroll",
			Description: "View or set the current bankroll",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "set",
					Description: "New bankroll value (omit to just view)",
					Required:    false,
				},
			},
		},
		{
			Name:        "combos",
			Description: "Generate accumulator combinations from pasted selections",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Combination shape",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Doubles", Value: "doubles"},
						{Name: "Trixie", Value: "trixie"},
						{Name: "Lucky 15", Value: "lucky15"},
						{Name: "Canadian", Value: "canadian"},
						{Name: "Heinz", Value: "heinz"},
					},
				},
			},
		},
		{
			Name:        "add_alias",
			Description: "Teach the bot a new bookmaker alias (e.g., PP = Paddy Power)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "alias",
					Description: "The shorthand (e.g., PP, WH)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "full_name",
					Description: "The full bookmaker name (e.g., Paddy Power)",
					Required:    true,
				},
			},
		},
		{
			Name:        "add_sport_alias",
			Description: "Teach the bot a new sport alias (e.g., fball = Football)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "alias",
					Description: "The shorthand (e.g., fball, nfl)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "full_name",
					Description: "The full sport name (e.g., Football, NFL)",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
