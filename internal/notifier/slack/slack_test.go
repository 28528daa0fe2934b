package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/matchday/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendText_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// The api must not be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, metrics)

	require.NoError(t, notifier.SendText(context.Background(), "slack:C123", "hello", true))
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendText_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, metrics)

	require.NoError(t, notifier.SendText(context.Background(), "slack:C123", "hello", false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendText_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, metrics)

	err := notifier.SendText(context.Background(), "slack:C123", "hello", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("🏆 Table\n\nTeam | P | Pts\nA | 1 | 3\n\n\n⚽ Goals:\n1. Messi 2")
	require.Len(t, msg.Blocks.BlockSet, 3)

	second, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, slackapi.MarkdownType, second.Text.Type)
	assert.Equal(t, "```Team | P | Pts\nA | 1 | 3```", second.Text.Text)

	first := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, "🏆 Table", first.Text.Text)
}
