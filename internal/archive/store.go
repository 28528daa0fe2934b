package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/matchday/internal/tournament"
)

// New creates a new archive Store.
func New(db *sql.DB) Store {
	return &store{
		db:  db,
		now: func() int64 { return time.Now().Unix() },
	}
}

// SaveTournament writes rosters, matches and per-player contributions in one
// transaction and returns the tournament id. A summary whose ID is already
// archived replaces that record, so retrying a finish never counts it twice.
func (s *store) SaveTournament(ctx context.Context, summary tournament.Summary) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := summary.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := deleteTournament(ctx, tx, id); err != nil {
		return "", err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO tournaments (id, chat_id, tournament_date, created_at) VALUES (?, ?, ?, ?)",
		id, summary.ChatID, summary.Date, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to insert tournament: %w", err)
	}

	for _, roster := range summary.Rosters {
		for _, player := range roster.Players {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO teams (tournament_id, chat_id, tournament_date, team_name, player_name) VALUES (?, ?, ?, ?, ?)",
				id, summary.ChatID, summary.Date, roster.Team, player)
			if err != nil {
				return "", fmt.Errorf("failed to insert roster entry: %w", err)
			}
		}
	}

	playerStmt, err := tx.PrepareContext(ctx, "INSERT INTO players (match_id, player, goals, assists) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer playerStmt.Close()

	for seq, m := range summary.Matches {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO matches (tournament_id, chat_id, seq, team1, team2, score1, score2) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, summary.ChatID, seq, m.Team1, m.Team2, m.Score1, m.Score2)
		if err != nil {
			return "", fmt.Errorf("failed to insert match: %w", err)
		}
		matchID, err := res.LastInsertId()
		if err != nil {
			return "", err
		}
		for _, c := range m.Contributions() {
			if c.Scorer != "" {
				if _, err := playerStmt.ExecContext(ctx, matchID, c.Scorer, 1, 0); err != nil {
					return "", fmt.Errorf("failed to insert scorer: %w", err)
				}
			}
			if c.Assistant != "" {
				if _, err := playerStmt.ExecContext(ctx, matchID, c.Assistant, 0, 1); err != nil {
					return "", fmt.Errorf("failed to insert assistant: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	log.Info("Archived tournament", "id", id, "chat", summary.ChatID, "matches", len(summary.Matches))
	return id, nil
}

func deleteTournament(ctx context.Context, tx *sql.Tx, id string) error {
	for _, q := range []string{
		"DELETE FROM players WHERE match_id IN (SELECT id FROM matches WHERE tournament_id = ?)",
		"DELETE FROM matches WHERE tournament_id = ?",
		"DELETE FROM teams WHERE tournament_id = ?",
		"DELETE FROM tournaments WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to replace archived tournament %s: %w", id, err)
		}
	}
	return nil
}

// ListTournaments returns a chat's archived tournaments, oldest first.
func (s *store) ListTournaments(ctx context.Context, chatID string) ([]TournamentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			t.id,
			t.chat_id,
			t.tournament_date,
			(SELECT COUNT(*) FROM matches m WHERE m.tournament_id = t.id),
			(SELECT COALESCE(SUM(m.score1 + m.score2), 0) FROM matches m WHERE m.tournament_id = t.id)
		FROM tournaments t
		WHERE t.chat_id = ?
		ORDER BY t.created_at, t.rowid
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TournamentInfo
	for rows.Next() {
		var info TournamentInfo
		if err := rows.Scan(&info.ID, &info.ChatID, &info.Date, &info.Matches, &info.Goals); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// PlayerTotals sums every archived contribution of a chat. Players appear in
// the order of their first archived contribution.
func (s *store) PlayerTotals(ctx context.Context, chatID string) (*tournament.Tally, *tournament.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.player, SUM(p.goals), SUM(p.assists)
		FROM players p
		JOIN matches m ON p.match_id = m.id
		WHERE m.chat_id = ?
		GROUP BY p.player
		ORDER BY MIN(p.id)
	`, chatID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	goals, assists := tournament.NewTally(), tournament.NewTally()
	for rows.Next() {
		var (
			player string
			g, a   int
		)
		if err := rows.Scan(&player, &g, &a); err != nil {
			log.Error("Failed to scan player totals row", "error", err)
			return nil, nil, err
		}
		if g > 0 {
			goals.Add(player, g)
		}
		if a > 0 {
			assists.Add(player, a)
		}
	}
	return goals, assists, rows.Err()
}
