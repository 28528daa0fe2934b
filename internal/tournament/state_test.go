package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, line string) Match {
	t.Helper()
	m, err := ParseMatch(line)
	require.NoError(t, err)
	return m
}

func TestChatState_AddMatch(t *testing.T) {
	st := NewChatState()
	m := mustParse(t, "Barca (Messi+Xavi, Neymar) 2-1 Real (Ronaldo+Benzema)")

	require.NoError(t, st.AddMatch(m))

	require.Len(t, st.Matches(), 1)
	assert.Equal(t, 2, st.Matches()[0].Score1)
	assert.Equal(t, 1, st.Matches()[0].Score2)
	assert.Equal(t, 1, st.Goals().Get("Messi"))
	assert.Equal(t, 1, st.Goals().Get("Neymar"))
	assert.Equal(t, 1, st.Goals().Get("Ronaldo"))
	assert.Equal(t, 1, st.Assists().Get("Xavi"))
	assert.Equal(t, 1, st.Assists().Get("Benzema"))
	assert.Equal(t, 0, st.Assists().Get("Messi"))
}

func TestChatState_UndoLast(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		st := NewChatState()
		_, err := st.UndoLast()
		assert.ErrorIs(t, err, ErrEmptyHistory)
	})

	t.Run("two matches then one undo keeps the first", func(t *testing.T) {
		st := NewChatState()
		first := mustParse(t, "Barca (Messi+Xavi, Neymar) 2-1 Real (Ronaldo+Benzema)")
		second := mustParse(t, "Barca (Messi+Iniesta) 1-0 Real")
		require.NoError(t, st.AddMatch(first))
		require.NoError(t, st.AddMatch(second))
		assert.Equal(t, 2, st.Goals().Get("Messi"))

		undone, err := st.UndoLast()
		require.NoError(t, err)
		assert.Equal(t, second, undone)

		assert.Equal(t, []Match{first}, st.Matches())
		assert.Equal(t, map[string]int{"Messi": 1, "Neymar": 1, "Ronaldo": 1}, st.Goals().Map())
		assert.Equal(t, map[string]int{"Xavi": 1, "Benzema": 1}, st.Assists().Map())
	})

	t.Run("undo everything returns to empty", func(t *testing.T) {
		st := NewChatState()
		lines := []string{
			"A (x+y, x) 2-0 B",
			"B (z+x) 1-1 C (y+y)",
			"C 0-3 A (y, y+z, q)",
		}
		for _, l := range lines {
			require.NoError(t, st.AddMatch(mustParse(t, l)))
		}
		for range lines {
			_, err := st.UndoLast()
			require.NoError(t, err)
		}
		assert.Empty(t, st.Matches())
		assert.Equal(t, 0, st.Goals().Len())
		assert.Equal(t, 0, st.Assists().Len())
	})
}

func TestChatState_TalliesMatchContributions(t *testing.T) {
	st := NewChatState()
	lines := []string{
		"A (x+y, x, +w) 2-0 B",
		"B (z+x) 1-1 C (y+y)",
		"C 0-3 A (y, y+z, q)",
		"A 1-2 B (k+l, m)",
	}
	for i, l := range lines {
		require.NoError(t, st.AddMatch(mustParse(t, l)))

		goals, assists := 0, 0
		for _, m := range st.Matches() {
			for _, c := range m.Contributions() {
				if c.Scorer != "" {
					goals++
				}
				if c.Assistant != "" {
					assists++
				}
			}
		}
		assert.Equal(t, goals, st.Goals().Total(), "goals after match %d", i+1)
		assert.Equal(t, assists, st.Assists().Total(), "assists after match %d", i+1)
	}
}

func TestChatState_ResetAndFinish(t *testing.T) {
	st := NewChatState()
	st.SetRosters([]Roster{{Team: "🟦", Players: []string{"Alice"}}})
	require.NoError(t, st.AddMatch(mustParse(t, "A (x) 1-0 B")))

	st.MarkFinished()
	assert.ErrorIs(t, st.AddMatch(mustParse(t, "A 1-0 B")), ErrTournamentFinished)
	_, err := st.UndoLast()
	assert.ErrorIs(t, err, ErrTournamentFinished)

	st.Reset()
	assert.False(t, st.Finished())
	assert.Empty(t, st.Matches())
	assert.Equal(t, 0, st.Goals().Len())
	assert.Len(t, st.Rosters(), 1, "rosters survive a reset")
}

func TestChatState_BeginFinish(t *testing.T) {
	st := NewChatState()
	require.NoError(t, st.AddMatch(mustParse(t, "A (x) 1-0 B")))

	require.NoError(t, st.BeginFinish())
	id := st.Summary("tg:1", "2025-05-01").ID
	assert.NotEmpty(t, id)
	assert.True(t, st.Finishing())
	assert.ErrorIs(t, st.BeginFinish(), ErrFinishInProgress)
	assert.ErrorIs(t, st.AddMatch(mustParse(t, "A 1-0 B")), ErrFinishInProgress)
	_, err := st.UndoLast()
	assert.ErrorIs(t, err, ErrFinishInProgress)

	st.AbortFinish()
	assert.False(t, st.Finishing())
	require.NoError(t, st.BeginFinish())
	assert.Equal(t, id, st.Summary("tg:1", "2025-05-01").ID, "a retried finish keeps its id")

	st.MarkFinished()
	assert.False(t, st.Finishing())
	assert.ErrorIs(t, st.BeginFinish(), ErrTournamentFinished)

	st.Reset()
	assert.Empty(t, st.Summary("tg:1", "2025-05-01").ID)
}

func TestChatState_MVP(t *testing.T) {
	st := NewChatState()
	require.NoError(t, st.AddMatch(mustParse(t, "A (x+y, y+x) 2-0 B (z+w, w)")))

	players, total := st.MVP()
	assert.Equal(t, []string{"x", "y", "w"}, players)
	assert.Equal(t, 2, total)
}

func TestChatState_SetRostersMerges(t *testing.T) {
	st := NewChatState()
	st.SetRosters([]Roster{{Team: "🟦", Players: []string{"Alice"}}})
	st.SetRosters([]Roster{{Team: "🟦", Players: []string{"Bob"}}, {Team: "🟩", Players: []string{"Carol"}}})

	assert.Equal(t, []Roster{
		{Team: "🟦", Players: []string{"Alice", "Bob"}},
		{Team: "🟩", Players: []string{"Carol"}},
	}, st.Rosters())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	_, ok := store.Get("tg:1")
	assert.False(t, ok)

	st := NewChatState()
	store.Put("tg:1", st)
	got, ok := store.Get("tg:1")
	require.True(t, ok)
	assert.Same(t, st, got)

	_, ok = store.Get("tg:2")
	assert.False(t, ok, "chats do not share state")

	store.Delete("tg:1")
	_, ok = store.Get("tg:1")
	assert.False(t, ok)
}

func TestSummaryKeepsOrder(t *testing.T) {
	st := NewChatState()
	m, err := ParseMatch("A (Zed+Amy, Bob) 2-0 B")
	require.NoError(t, err)
	require.NoError(t, st.AddMatch(m))

	sum := st.Summary("tg:1", "2025-05-01")
	assert.Equal(t, []LeaderboardEntry{{Player: "Zed", Count: 1}, {Player: "Bob", Count: 1}}, sum.Goals)
	assert.Equal(t, sum.Goals, sum.GoalTally().Entries())
	assert.Equal(t, map[string]int{"Amy": 1}, sum.AssistTally().Map())
	assert.Len(t, sum.Matches, 1)
}
