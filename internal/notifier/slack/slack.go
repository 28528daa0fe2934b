package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/slack-go/slack"
)

// maxSectionText is Slack's limit for a section block's text.
const maxSectionText = 3000

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts chat replies to Slack channels.
type Notifier struct {
	api     slackClient
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		metrics: metrics,
	}
}

// SendText posts text to the channel behind a "slack:" chat id.
func (s *Notifier) SendText(ctx context.Context, chatID string, text string, dryRun bool) error {
	message := BuildMessage(text)
	channel := notifier.StripNamespace(chatID)
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channel, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channel)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// BuildMessage turns a plain reply into Block Kit: one mrkdwn section per paragraph.
// Paragraphs that look like tables are wrapped in a code block.
func BuildMessage(text string) slack.Message {
	var blocks []slack.Block
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if strings.Contains(para, "|") {
			para = "```" + para + "```"
		}
		if len(para) > maxSectionText {
			para = para[:maxSectionText-3] + "..."
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, para, false, false), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}
