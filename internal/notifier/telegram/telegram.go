package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
)

// Sender is the part of tgbotapi.BotAPI used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts chat replies to Telegram chats.
type Notifier struct {
	api     Sender
	metrics metrics.Metrics
}

// NewNotifier creates a Notifier sending through api.
func NewNotifier(api Sender, metrics metrics.Metrics) *Notifier {
	return &Notifier{api: api, metrics: metrics}
}

// SendText posts text to the chat behind a "tg:" chat id.
func (n *Notifier) SendText(ctx context.Context, chatID string, text string, dryRun bool) error {
	id, err := strconv.ParseInt(notifier.StripNamespace(chatID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	if dryRun {
		log.Info("[Dry Run] Would send Telegram message", "chat", id, "text", text)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := n.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
		n.metrics.IncNotifFailed()
		log.Error("Failed to send Telegram message", "error", err, "chat", id)
		return fmt.Errorf("failed to send message: %w", err)
	}
	n.metrics.IncNotifSent()
	log.Debug("Sent Telegram message", "chat", id)
	return nil
}
