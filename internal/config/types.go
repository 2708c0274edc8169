package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	APIURL         string
	Port           string
	Debounce       time.Duration
	RevealDelay    time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	DBName         string
	Turso          TursoConfig
	Slack          SlackConfig
	PubSub         PubSubConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether both a token and a channel are configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// Enabled reports whether outcomes should be published.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != "" && c.Topic != ""
}
