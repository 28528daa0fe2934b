package archive_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (archive.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return archive.New(db), db, teardown
}

func finishedTournament(t *testing.T, chatID string, lines ...string) tournament.Summary {
	t.Helper()
	st := tournament.NewChatState()
	st.SetRosters([]tournament.Roster{{Team: "🟦", Players: []string{"Messi", "Xavi"}}})
	for _, l := range lines {
		m, err := tournament.ParseMatch(l)
		require.NoError(t, err)
		require.NoError(t, st.AddMatch(m))
	}
	return st.Summary(chatID, "2025-05-01")
}

func TestSaveTournament(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	summary := finishedTournament(t, "tg:1",
		"Barca (Messi+Xavi, Neymar) 2-1 Real (Ronaldo+Benzema)",
		"Barca 0-0 Real",
	)
	id, err := store.SaveTournament(ctx, summary)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var matches, players, rosterRows int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches WHERE tournament_id = ?", id).Scan(&matches))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM players").Scan(&players))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams WHERE tournament_id = ?", id).Scan(&rosterRows))
	assert.Equal(t, 2, matches)
	assert.Equal(t, 5, players, "three scorer rows and two assist rows")
	assert.Equal(t, 2, rosterRows)

	list, err := store.ListTournaments(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "2025-05-01", list[0].Date)
	assert.Equal(t, 2, list[0].Matches)
	assert.Equal(t, 3, list[0].Goals)
}

func TestSaveTournamentReplacesSameID(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	summary := finishedTournament(t, "tg:1", "A (Messi+Xavi) 1-0 B")
	summary.ID = "fixed-id"
	id, err := store.SaveTournament(ctx, summary)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	retry := finishedTournament(t, "tg:1", "A (Messi+Xavi) 1-0 B", "A (Neymar) 1-0 B")
	retry.ID = "fixed-id"
	_, err = store.SaveTournament(ctx, retry)
	require.NoError(t, err)

	list, err := store.ListTournaments(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Matches)

	var players int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM players").Scan(&players))
	assert.Equal(t, 3, players)

	goals, assists, err := store.PlayerTotals(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Messi": 1, "Neymar": 1}, goals.Map())
	assert.Equal(t, map[string]int{"Xavi": 1}, assists.Map())
}

func TestPlayerTotals(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.SaveTournament(ctx, finishedTournament(t, "tg:1", "A (Messi+Xavi) 1-0 B"))
	require.NoError(t, err)
	_, err = store.SaveTournament(ctx, finishedTournament(t, "tg:1", "A (Neymar+Messi, Messi) 2-0 B"))
	require.NoError(t, err)
	_, err = store.SaveTournament(ctx, finishedTournament(t, "tg:2", "A (Other) 1-0 B"))
	require.NoError(t, err)

	goals, assists, err := store.PlayerTotals(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, []tournament.LeaderboardEntry{
		{Player: "Messi", Count: 2},
		{Player: "Neymar", Count: 1},
	}, goals.Entries())
	assert.Equal(t, map[string]int{"Xavi": 1, "Messi": 1}, assists.Map())

	t.Run("unknown chat is empty", func(t *testing.T) {
		goals, assists, err := store.PlayerTotals(ctx, "tg:404")
		require.NoError(t, err)
		assert.Equal(t, 0, goals.Len())
		assert.Equal(t, 0, assists.Len())
	})
}
