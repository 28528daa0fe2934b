package archive

import (
	"context"
	"sync"

	"github.com/mauv0809/matchday/internal/tournament"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	SaveTournamentFunc  func(summary tournament.Summary) (string, error)
	ListTournamentsFunc func(chatID string) ([]TournamentInfo, error)
	PlayerTotalsFunc    func(chatID string) (*tournament.Tally, *tournament.Tally, error)

	SaveTournamentCalls []tournament.Summary
	PlayerTotalsCalls   []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SaveTournament(ctx context.Context, summary tournament.Summary) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveTournamentCalls = append(m.SaveTournamentCalls, summary)
	if m.SaveTournamentFunc != nil {
		return m.SaveTournamentFunc(summary)
	}
	return "mock-tournament", nil
}

func (m *MockStore) ListTournaments(ctx context.Context, chatID string) ([]TournamentInfo, error) {
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(chatID)
	}
	return nil, nil
}

func (m *MockStore) PlayerTotals(ctx context.Context, chatID string) (*tournament.Tally, *tournament.Tally, error) {
	m.mu.Lock()
	m.PlayerTotalsCalls = append(m.PlayerTotalsCalls, chatID)
	m.mu.Unlock()
	if m.PlayerTotalsFunc != nil {
		return m.PlayerTotalsFunc(chatID)
	}
	return tournament.NewTally(), tournament.NewTally(), nil
}
