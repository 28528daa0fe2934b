package tournament

import "errors"

var (
	// ErrMalformedInput is returned when a result line does not follow the match grammar.
	ErrMalformedInput = errors.New("malformed match result")
	// ErrEmptyHistory is returned when undo is requested with no recorded matches.
	ErrEmptyHistory = errors.New("nothing to undo")
	// ErrTournamentFinished is returned when a finished tournament is modified.
	ErrTournamentFinished = errors.New("tournament already finished")
	// ErrFinishInProgress is returned while an end is being saved.
	ErrFinishInProgress = errors.New("tournament is being finished")
)

// Match is a single recorded result. The contribution fields hold the raw
// comma-separated player lists as typed in chat.
type Match struct {
	Team1              string `json:"team1" msgpack:"team1"`
	Score1             int    `json:"score1" msgpack:"score1"`
	Team2              string `json:"team2" msgpack:"team2"`
	Score2             int    `json:"score2" msgpack:"score2"`
	Team1Contributions string `json:"team1_contributions,omitempty" msgpack:"team1_contributions"`
	Team2Contributions string `json:"team2_contributions,omitempty" msgpack:"team2_contributions"`
}

// Contributions returns the parsed contributions of both teams, home side first.
func (m Match) Contributions() []Contribution {
	return append(ParseContributions(m.Team1Contributions), ParseContributions(m.Team2Contributions)...)
}

// Contribution is one goal entry. Either side may be empty.
type Contribution struct {
	Scorer    string
	Assistant string
}

// Outcome is a single form symbol.
type Outcome string

const (
	Win  Outcome = "W"
	Draw Outcome = "D"
	Loss Outcome = "L"
)

// TeamStanding is a derived league table row.
type TeamStanding struct {
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Form         []Outcome
}

func (t TeamStanding) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// LeaderboardEntry is a player with a goal or assist count.
type LeaderboardEntry struct {
	Player string `json:"player" msgpack:"player"`
	Count  int    `json:"count" msgpack:"count"`
}

// Roster is the list of players registered for one team slot.
type Roster struct {
	Team    string   `json:"team" msgpack:"team"`
	Players []string `json:"players" msgpack:"players"`
}

// Summary is a frozen copy of a chat's tournament, handed to the sinks when it ends.
// ID is stable across retries of the same tournament.
type Summary struct {
	ID      string             `msgpack:"id"`
	ChatID  string             `msgpack:"chat_id"`
	Date    string             `msgpack:"date"`
	Rosters []Roster           `msgpack:"rosters"`
	Matches []Match            `msgpack:"matches"`
	Goals   []LeaderboardEntry `msgpack:"goals"`
	Assists []LeaderboardEntry `msgpack:"assists"`
}

// GoalTally rebuilds the goal tally in first-appearance order.
func (s Summary) GoalTally() *Tally { return tallyFrom(s.Goals) }

// AssistTally rebuilds the assist tally in first-appearance order.
func (s Summary) AssistTally() *Tally { return tallyFrom(s.Assists) }

func tallyFrom(entries []LeaderboardEntry) *Tally {
	t := NewTally()
	for _, e := range entries {
		t.Add(e.Player, e.Count)
	}
	return t
}
