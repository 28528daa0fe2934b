package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// ErrNoTransport is returned when neither Telegram nor Slack is configured.
var ErrNoTransport = errors.New("no chat transport configured: set TELEGRAM_BOT_TOKEN or SLACK_BOT_TOKEN")

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getEnv("PORT"),
		Debug:     optional("DEBUG") == "1" || strings.EqualFold(optional("DEBUG"), "true"),
		AdminIDs:  ParseIDs(optional("ADMIN_IDS")),
		SheetPath: optional("SHEET_PATH"),
		Telegram: TelegramConfig{
			Token: optional("TELEGRAM_BOT_TOKEN"),
		},
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN"),
			SigningSecret: optional("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL"),
			AuthToken:  optional("TURSO_AUTH_TOKEN"),
		},
		PubSub: PubSubConfig{
			ProjectID: optional("GCP_PROJECT"),
			Topic:     optional("PUBSUB_TOPIC"),
		},
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if cfg.Telegram.Token == "" && cfg.Slack.Token == "" {
		return Config{}, ErrNoTransport
	}
	if cfg.Slack.Token != "" && cfg.Slack.SigningSecret == "" {
		return Config{}, errors.New("SLACK_SIGNING_SECRET is required when SLACK_BOT_TOKEN is set")
	}

	cfg.Location = time.UTC
	if tz := optional("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}
	return cfg, nil
}

// ParseIDs splits a comma-separated id list, dropping blanks.
// Bare numeric ids are treated as Telegram user ids.
func ParseIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if !strings.Contains(id, ":") {
			id = "tg:" + id
		}
		ids = append(ids, id)
	}
	return ids
}
