package sheets

import (
	"context"
	"sync"

	"github.com/mauv0809/matchday/internal/tournament"
)

// Mock is a mock implementation of the Sink interface for testing.
type Mock struct {
	mu sync.Mutex

	SyncFunc   func(goals, assists *tournament.Tally) error
	TotalsFunc func() (*tournament.Tally, *tournament.Tally, error)

	SyncCalls []struct{ Goals, Assists map[string]int }
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Sync(ctx context.Context, goals, assists *tournament.Tally) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncCalls = append(m.SyncCalls, struct{ Goals, Assists map[string]int }{goals.Map(), assists.Map()})
	if m.SyncFunc != nil {
		return m.SyncFunc(goals, assists)
	}
	return nil
}

func (m *Mock) Totals(ctx context.Context) (*tournament.Tally, *tournament.Tally, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc()
	}
	return tournament.NewTally(), tournament.NewTally(), nil
}
