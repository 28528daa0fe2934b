package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Debug     bool
	Location  *time.Location
	AdminIDs  []string
	SheetPath string
	Telegram  TelegramConfig
	Slack     SlackConfig
	Turso     TursoConfig
	PubSub    PubSubConfig
}

type TelegramConfig struct {
	Token string
}

type SlackConfig struct {
	Token         string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

// Enabled reports whether asynchronous finishing is configured.
func (p PubSubConfig) Enabled() bool {
	return p.ProjectID != "" && p.Topic != ""
}
