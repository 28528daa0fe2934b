package commands

import (
	"fmt"
	"strings"

	"github.com/mauv0809/matchday/internal/tournament"
)

// FormatMatch renders a result as "Home 2-1 Away".
func FormatMatch(m tournament.Match) string {
	return fmt.Sprintf("%s %d-%d %s", m.Team1, m.Score1, m.Score2, m.Team2)
}

// FormatTable renders the standings with one row per team.
func FormatTable(standings []tournament.TeamStanding) string {
	var b strings.Builder
	b.WriteString("🏆 Table:\n📊 P | W-D-L | GF-GA | GD | Pts | Form\n")
	for _, s := range standings {
		form := make([]string, len(s.Form))
		for i, o := range s.Form {
			form[i] = string(o)
		}
		fmt.Fprintf(&b, "%s | %d | %d-%d-%d | %d-%d | %d | %d | %s\n",
			s.Team, s.Played, s.Won, s.Drawn, s.Lost, s.GoalsFor, s.GoalsAgainst,
			s.GoalDifference(), s.Points, strings.Join(form, ""))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatLeaderboard renders "title" followed by "Player: count" lines.
func FormatLeaderboard(title string, entries []tournament.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString(title)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s: %d", e.Player, e.Count)
	}
	return b.String()
}

func FormatMVP(players []string, total int) string {
	if len(players) == 0 {
		return "🔥 No MVP: nobody scored or assisted."
	}
	return fmt.Sprintf("🔥 Tournament MVP: %s (Goals+Assists = %d)", strings.Join(players, ", "), total)
}

func FormatRosters(rosters []tournament.Roster) string {
	lines := make([]string, 0, len(rosters))
	for _, r := range rosters {
		lines = append(lines, r.Team+" "+strings.Join(r.Players, ", "))
	}
	return strings.Join(lines, "\n")
}

var helpText = map[string]string{
	"start":      "start a new tournament",
	"hello":      "check the bot is alive",
	"teams":      "save rosters: numbered lines (1., 2., 3.) followed by players",
	"result":     "record a match: Team1 (Scorer+Assistant, Scorer) 2-1 Team2 (Scorer)",
	"undo":       "remove the last recorded match",
	"table":      "show the standings",
	"goals":      "show this tournament's scorers",
	"assists":    "show this tournament's assists",
	"topscorers": "show all-time scorers",
	"playmakers": "show all-time assists",
	"end":        "finish the tournament and save the statistics",
	"reset":      "clear matches, goals and assists",
	"fullreset":  "delete everything for this chat (admins only)",
	"help":       "show this message",
}

func FormatHelp() string {
	var b strings.Builder
	b.WriteString("📋 Commands:")
	for _, name := range Names {
		fmt.Fprintf(&b, "\n/%s - %s", name, helpText[name])
	}
	return b.String()
}
