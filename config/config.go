package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string
	LogChannelID   string

	// Storage configuration. DatabaseURL selects the Postgres backend;
	// when empty, bets and the bankroll live in JSON files under DataDir.
	DatabaseURL string
	DataDir     string `validate:"required"`

	// Bankroll configuration
	DefaultBankroll float64 `validate:"gt=0"`

	// Bet draft sessions expire after this long without confirmation
	SessionTTL time.Duration `validate:"gt=0"`

	// Environment
	Environment string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),
		LogChannelID:   os.Getenv("LOG_CHANNEL_ID"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     "data",

		DefaultBankroll: 3000,
		SessionTTL:      time.Hour,

		Environment: os.Getenv("ENVIRONMENT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	// Override defaults if environment variables are set
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.DataDir = dir
	}
	if bankroll := os.Getenv("DEFAULT_BANKROLL"); bankroll != "" {
		parsed, err := strconv.ParseFloat(bankroll, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEFAULT_BANKROLL %q: %w", bankroll, err)
		}
		config.DefaultBankroll = parsed
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		config.SessionTTL = parsed
	}
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// The Discord token is only needed when the bot actually connects
	if config.Environment != "test" && config.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	return config, nil
}
