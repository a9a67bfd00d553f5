package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"kellybook/events"
	"kellybook/parser"
	"kellybook/service"
)

// Config holds bot configuration
type Config struct {
	Token        string
	GuildID      string
	LogChannelID string
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	betService      service.BetService
	bankrollService service.BankrollService
	statsService    service.StatsService
	bookmakerStore  service.AliasStore
	sportStore      service.AliasStore
	parser          *parser.Parser
	drafts          *service.SessionManager
	eventBus        *events.Bus
}

func New(config Config, betService service.BetService, bankrollService service.BankrollService, statsService service.StatsService, bookmakerStore, sportStore service.AliasStore, drafts *service.SessionManager, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:          config,
		session:         dg,
		betService:      betService,
		bankrollService: bankrollService,
		statsService:    statsService,
		bookmakerStore:  bookmakerStore,
		sportStore:      sportStore,
		drafts:          drafts,
		eventBus:        eventBus,
	}

	if err := bot.loadParser(context.Background()); err != nil {
		return nil, err
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleBetInteraction)
	dg.AddHandler(bot.handleSettleInteraction)
	dg.AddHandler(bot.handleCombosInteraction)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Surface ledger inconsistencies where an operator will see them
	eventBus.Subscribe(events.EventTypeCriticalInconsistency, func(ctx context.Context, event events.Event) {
		if inconsistency, ok := event.(events.CriticalInconsistencyEvent); ok {
			bot.reportInconsistency(inconsistency)
		}
	})

	// Mirror bet activity into the log channel
	eventBus.Subscribe(events.EventTypeBetFinalized, func(ctx context.Context, event events.Event) {
		if finalized, ok := event.(events.BetFinalizedEvent); ok {
			bot.logActivity(fmt.Sprintf("📋 Placed `%s`: %s, %s @ %g",
				finalized.Bet.ID, finalized.Bet.BetName, FormatMoney(finalized.Bet.Stake), finalized.Bet.BackOdds))
		}
	})
	eventBus.Subscribe(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) {
		if settled, ok := event.(events.BetSettledEvent); ok {
			bot.logActivity(fmt.Sprintf("🏁 Settled `%s` as %s: P/L %s",
				settled.Bet.ID, settled.Outcome, FormatSignedMoney(settled.ProfitLoss)))
		}
	})
	eventBus.Subscribe(events.EventTypeBetUnsettled, func(ctx context.Context, event events.Event) {
		if unsettled, ok := event.(events.BetUnsettledEvent); ok {
			bot.logActivity(fmt.Sprintf("↩️ Unsettled `%s` (was %s)", unsettled.Bet.ID, unsettled.PriorStatus))
		}
	})

	return bot, nil
}

// logActivity posts to the configured log channel, silently skipped when
// none is set
func (b *Bot) logActivity(content string) {
	if b.config.LogChannelID == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(b.config.LogChannelID, content); err != nil {
		log.WithError(err).Warn("Failed to post activity log")
	}
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// loadParser builds the bet string parser from the stored alias maps
func (b *Bot) loadParser(ctx context.Context) error {
	bookmakerAliases, err := b.bookmakerStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bookmaker aliases: %w", err)
	}
	sportAliases, err := b.sportStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sport aliases: %w", err)
	}
	b.parser = parser.New(bookmakerAliases, sportAliases)
	return nil
}

// reportInconsistency posts a failed compensation to the log channel
func (b *Bot) reportInconsistency(event events.CriticalInconsistencyEvent) {
	log.WithFields(log.Fields{
		"op":    event.Op,
		"betID": event.BetID,
	}).Error("Critical bankroll inconsistency")

	if b.config.LogChannelID == "" {
		return
	}
	content := fmt.Sprintf("🚨 **Bankroll inconsistency** during %s of bet `%s`:\n%s\nManual correction needed.",
		event.Op, event.BetID, event.Details)
	if _, err := b.session.ChannelMessageSend(b.config.LogChannelID, content); err != nil {
		log.WithError(err).Error("Failed to post inconsistency report")
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "newbet":
		b.handleNewBet(s, i)
	case "editbet":
		b.handleEditBet(s, i)
	case "settlebet":
		b.handleSettleBet(s, i)
	case "unsettlebet":
		b.handleUnsettleBet(s, i)
	case "pendingbets":
		b.handlePendingBets(s, i)
	case "stats":
		b.handleStats(s, i)
	case "bankroll":
		b.handleBankroll(s, i)
	case "combos":
		b.handleCombos(s, i)
	case "add_alias":
		b.handleAddAlias(s, i, b.bookmakerStore, "bookmaker")
	case "add_sport_alias":
		b.handleAddAlias(s, i, b.sportStore, "sport")
	}
}

// handleAddAlias registers a new shorthand for a bookmaker or sport
func (b *Bot) handleAddAlias(s *discordgo.Session, i *discordgo.InteractionCreate, store service.AliasStore, kind string) {
	ctx := context.Background()
	options := optionMap(i)

	alias := strings.ToUpper(strings.TrimSpace(stringOption(options, "alias")))
	fullName := strings.TrimSpace(stringOption(options, "full_name"))
	if alias == "" || fullName == "" {
		b.respondWithError(s, i, "Both alias and full name are required.")
		return
	}

	aliases, err := store.Load(ctx)
	if err != nil {
		log.WithError(err).Errorf("Failed to load %s aliases", kind)
		b.respondWithError(s, i, "Unable to load aliases. Please try again.")
		return
	}
	aliases[alias] = fullName
	if err := store.Save(ctx, aliases); err != nil {
		log.WithError(err).Errorf("Failed to save %s aliases", kind)
		b.respondWithError(s, i, "Unable to save alias. Please try again.")
		return
	}

	// Pick up the new alias immediately
	if err := b.loadParser(ctx); err != nil {
		log.WithError(err).Warn("Failed to reload parser after alias change")
	}

	b.respond(s, i, fmt.Sprintf("✅ Added %s alias: `%s` → `%s`", kind, alias, fullName))
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Error sending response")
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	b.respond(s, i, "❌ "+message)
}

// optionMap flattens the interaction options by name
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		options[opt.Name] = opt
	}
	return options
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := options[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func numberOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (float64, bool) {
	if opt, ok := options[name]; ok {
		return opt.FloatValue(), true
	}
	return 0, false
}

func boolOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if opt, ok := options[name]; ok {
		return opt.BoolValue()
	}
	return false
}
