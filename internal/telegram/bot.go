package telegram

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/matchday/internal/commands"
	"github.com/mauv0809/matchday/internal/notifier"
)

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Handler runs a chat command and returns the replies.
type Handler interface {
	Handle(ctx context.Context, cmd commands.Command) []string
}

// Bot reads commands from Telegram long polling and posts the replies.
type Bot struct {
	api      botAPI
	handler  Handler
	notifier notifier.Notifier
}

// NewBot creates a Bot. Replies go out through n, which is usually the Telegram notifier.
func NewBot(api botAPI, handler Handler, n notifier.Notifier) *Bot {
	return &Bot{
		api:      api,
		handler:  handler,
		notifier: n,
	}
}

// Run polls for updates until ctx is cancelled. Updates are handled one at a time.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	log.Info("Telegram bot polling for updates")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	cmd := commands.Command{
		ChatID: "tg:" + strconv.FormatInt(msg.Chat.ID, 10),
		Name:   msg.Command(),
		Args:   commandArgs(msg),
	}
	if msg.From != nil {
		cmd.UserID = "tg:" + strconv.FormatInt(msg.From.ID, 10)
	}

	for _, reply := range b.handler.Handle(ctx, cmd) {
		if err := b.notifier.SendText(ctx, cmd.ChatID, reply, false); err != nil {
			log.Error("Failed to reply", "error", err, "chat", cmd.ChatID, "command", cmd.Name)
			return
		}
	}
}

// commandArgs returns everything after the command, keeping line breaks so
// multi-line /teams lists survive.
func commandArgs(msg *tgbotapi.Message) string {
	for _, e := range msg.Entities {
		if e.Offset == 0 && e.IsCommand() {
			runes := []rune(msg.Text)
			if e.Length >= len(runes) {
				return ""
			}
			return strings.TrimSpace(string(runes[e.Length:]))
		}
	}
	return msg.CommandArguments()
}
