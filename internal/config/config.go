package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL         = "http://localhost:8000"
	DefaultPort           = "8080"
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRevealDelay    = 300 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
	DefaultDBName         = "pitchside.db"
)

// Load reads configuration from environment variables and .env file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the given lookup function. Unset keys take
// their defaults.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) (time.Duration, error) {
		raw := getEnv(key, "")
		if raw == "" {
			return fallback, nil
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		if d < 0 {
			return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
		}
		return d, nil
	}

	cfg := Config{
		APIURL:    strings.TrimRight(getEnv("PITCHSIDE_API_URL", DefaultAPIURL), "/"),
		Port:      getEnv("PORT", DefaultPort),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DBName:    getEnv("DB_NAME", DefaultDBName),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnv("GCP_PROJECT", ""),
			Topic:     getEnv("PUBSUB_TOPIC", ""),
		},
	}

	var err error
	if cfg.Debounce, err = getDuration("DEBOUNCE", DefaultDebounce); err != nil {
		return Config{}, err
	}
	if cfg.RevealDelay, err = getDuration("REVEAL_DELAY", DefaultRevealDelay); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// SetupLogging applies the configured level and formatter to the default logger.
func (c Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}
