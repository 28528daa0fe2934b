package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendTextFunc func(chatID, text string) error

	SendTextCalls []SendTextCall
}

// SendTextCall holds the arguments for a call to SendText.
type SendTextCall struct {
	ChatID string
	Text   string
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendText(ctx context.Context, chatID string, text string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTextCalls = append(m.SendTextCalls, SendTextCall{ChatID: chatID, Text: text, DryRun: dryRun})
	if m.SendTextFunc != nil {
		return m.SendTextFunc(chatID, text)
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []SendTextCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendTextCall(nil), m.SendTextCalls...)
}
