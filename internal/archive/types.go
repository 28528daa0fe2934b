package archive

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the archive.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() int64
}

// TournamentInfo describes one archived tournament.
type TournamentInfo struct {
	ID      string `json:"id"`
	ChatID  string `json:"chat_id"`
	Date    string `json:"date"`
	Matches int    `json:"matches"`
	Goals   int    `json:"goals"`
}
