package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"kellybook/bot"
	"kellybook/config"
	"kellybook/database"
	"kellybook/events"
	"kellybook/logger"
	"kellybook/repository"
	"kellybook/service"
	"kellybook/storage"
)

// sessionCleanupInterval is how often expired bet drafts get swept
const sessionCleanupInterval = 5 * time.Minute

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	logger.Setup(cfg.LogLevel, cfg.Environment)

	log.Info("Starting kellybook bot...")

	eventBus := events.NewBus()

	backends, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	bankrollService := service.NewBankrollService(backends.bankroll, eventBus, cfg.DefaultBankroll)
	betService := service.NewBetService(backends.bets, bankrollService, eventBus)
	statsService := service.NewStatsService(backends.bets, bankrollService)

	drafts := service.NewSessionManager(cfg.SessionTTL)
	drafts.StartCleanup(sessionCleanupInterval)
	defer drafts.Stop()

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:        cfg.DiscordToken,
		GuildID:      cfg.DiscordGuildID,
		LogChannelID: cfg.LogChannelID,
	}, betService, bankrollService, statsService, backends.bookmakerAliases, backends.sportAliases, drafts, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.WithField("environment", cfg.Environment).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	return nil
}

// stores bundles the persistence backends the services run on
type stores struct {
	bets             service.BetStore
	bankroll         service.BankrollStore
	bookmakerAliases service.AliasStore
	sportAliases     service.AliasStore
}

// buildStores selects the persistence backend: Postgres when DATABASE_URL is
// set, JSON files under the data directory otherwise.
func buildStores(ctx context.Context, cfg *config.Config) (*stores, func(), error) {
	if cfg.DatabaseURL != "" {
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established")

		return &stores{
			bets:             repository.NewBetRepository(db),
			bankroll:         repository.NewBankrollRepository(db, cfg.DefaultBankroll),
			bookmakerAliases: repository.NewAliasRepository(db, "bookmaker"),
			sportAliases:     repository.NewAliasRepository(db, "sport"),
		}, db.Close, nil
	}

	log.WithField("dataDir", cfg.DataDir).Info("Using file storage")
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &stores{
		bets:             storage.NewBetStore(filepath.Join(cfg.DataDir, "bets.json")),
		bankroll:         storage.NewBankrollStore(filepath.Join(cfg.DataDir, "bankroll.json"), cfg.DefaultBankroll),
		bookmakerAliases: storage.NewAliasStore(filepath.Join(cfg.DataDir, "bookmaker_aliases.json"), "bookmaker"),
		sportAliases:     storage.NewAliasStore(filepath.Join(cfg.DataDir, "sport_aliases.json"), "sport"),
	}, func() {}, nil
}
