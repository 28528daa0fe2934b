package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestSendText(t *testing.T) {
	api := &fakeSender{}
	m := metrics.NewMock()
	n := NewNotifier(api, m)

	require.NoError(t, n.SendText(context.Background(), "tg:-100", "hello", false))
	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100), msg.ChatID)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, 1, m.NotifSent())
}

func TestSendTextErrors(t *testing.T) {
	api := &fakeSender{err: errors.New("blocked")}
	m := metrics.NewMock()
	n := NewNotifier(api, m)

	assert.ErrorContains(t, n.SendText(context.Background(), "tg:abc", "x", false), "invalid telegram chat id")
	assert.ErrorContains(t, n.SendText(context.Background(), "tg:1", "x", false), "blocked")
	assert.Equal(t, 1, m.NotifFailed())

	require.NoError(t, n.SendText(context.Background(), "tg:1", "x", true))
	assert.Len(t, api.sent, 1)
}
