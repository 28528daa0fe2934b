package tournament

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Match
	}{
		{
			name:  "full line with both player lists",
			input: "Barca (Messi+Xavi, Neymar) 2-1 Real (Ronaldo+Benzema)",
			expected: Match{
				Team1: "Barca", Score1: 2, Team2: "Real", Score2: 1,
				Team1Contributions: "Messi+Xavi, Neymar",
				Team2Contributions: "Ronaldo+Benzema",
			},
		},
		{
			name:     "no player lists",
			input:    "Blue 0-0 Green",
			expected: Match{Team1: "Blue", Score1: 0, Team2: "Green", Score2: 0},
		},
		{
			name:     "spaces around the dash",
			input:    "  Blue   3 -  4 Green ",
			expected: Match{Team1: "Blue", Score1: 3, Team2: "Green", Score2: 4},
		},
		{
			name:     "team names containing digits",
			input:    "Team 1 2-1 Team 2",
			expected: Match{Team1: "Team 1", Score1: 2, Team2: "Team 2", Score2: 1},
		},
		{
			name:  "only away list",
			input: "🟦 1-2 🟩 (Ann, Bo+Cy)",
			expected: Match{
				Team1: "🟦", Score1: 1, Team2: "🟩", Score2: 2,
				Team2Contributions: "Ann, Bo+Cy",
			},
		},
		{
			name:  "empty parentheses",
			input: "A () 1-0 B",
			expected: Match{
				Team1: "A", Score1: 1, Team2: "B", Score2: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMatch(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestParseMatch_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "   ", "empty input"},
		{"no score", "Barca beat Real", "missing score"},
		{"half a score", "Barca 2- Real", "missing score"},
		{"no home team", "2-1 Real", "missing home team"},
		{"no away team", "Barca 2-1", "missing away team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMatch(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.reason, perr.Reason)
		})
	}
}

func TestParseContributions(t *testing.T) {
	t.Run("scorers with and without assists", func(t *testing.T) {
		got := ParseContributions(" Messi + Xavi ,Neymar, ")
		assert.Equal(t, []Contribution{
			{Scorer: "Messi", Assistant: "Xavi"},
			{Scorer: "Neymar"},
		}, got)
	})

	t.Run("splits on the first plus", func(t *testing.T) {
		got := ParseContributions("A+B+C")
		assert.Equal(t, []Contribution{{Scorer: "A", Assistant: "B+C"}}, got)
	})

	t.Run("assist without scorer", func(t *testing.T) {
		got := ParseContributions("+Xavi")
		assert.Equal(t, []Contribution{{Assistant: "Xavi"}}, got)
	})

	t.Run("blank list", func(t *testing.T) {
		assert.Empty(t, ParseContributions("  "))
	})
}

func TestParseRosters(t *testing.T) {
	teams := []string{"🟦", "🟩", "🟧"}
	text := "ignored\n1.\nAlice\n Bob \n\n2. Greens\nCarol\n4.\nDave\n3.\nEve"

	got := ParseRosters(text, teams)

	assert.Equal(t, []Roster{
		{Team: "🟦", Players: []string{"Alice", "Bob"}},
		{Team: "🟩", Players: []string{"Carol"}},
		{Team: "🟧", Players: []string{"Eve"}},
	}, got)
}
