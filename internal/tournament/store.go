package tournament

import "sync"

// StateStore holds the live tournament of every chat.
type StateStore interface {
	Get(chatID string) (*ChatState, bool)
	Put(chatID string, state *ChatState)
	Delete(chatID string)
}

// memoryStore keeps chat states in process memory.
type memoryStore struct {
	mu     sync.RWMutex
	states map[string]*ChatState
}

// NewMemoryStore creates an empty in-memory StateStore.
func NewMemoryStore() StateStore {
	return &memoryStore{
		states: make(map[string]*ChatState),
	}
}

func (s *memoryStore) Get(chatID string) (*ChatState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[chatID]
	return st, ok
}

func (s *memoryStore) Put(chatID string, state *ChatState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = state
}

func (s *memoryStore) Delete(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
