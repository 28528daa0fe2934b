package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// usageStore keeps command and tournament counters next to the archive.
type usageStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() int64
}

// New creates a MetricsStore backed by the metrics table.
func New(db *sql.DB) MetricsStore {
	return &usageStore{
		db:  db,
		now: func() int64 { return time.Now().Unix() },
	}
}

// Increment bumps a usage counter. Failures are logged and dropped so that a
// broken counter never blocks a chat command.
func (s *usageStore) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value, updated_at) VALUES (?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET value = value + 1, updated_at = excluded.updated_at
	`, key, s.now())
	if err != nil {
		log.Error("Failed to increment usage counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented usage counter", "key", key)
}

// GetAll returns every usage counter by key.
func (s *usageStore) GetAll() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
