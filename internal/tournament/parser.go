package tournament

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes why a result line was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedInput, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedInput
}

// ParseMatch reads a line such as
//
//	Barca (Messi+Xavi, Neymar) 2-1 Real (Ronaldo+Benzema)
//
// The score is the leftmost "digits - digits" run that leaves a team name on
// both sides. Player lists in parentheses are optional.
func ParseMatch(text string) (Match, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Match{}, &ParseError{Input: text, Reason: "empty input"}
	}

	reason := "missing score"
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			continue
		}
		score1, score2, end, ok := scanScore(text, i)
		if !ok {
			continue
		}
		head := strings.TrimSpace(text[:i])
		tail := strings.TrimSpace(text[end:])
		if head == "" {
			reason = "missing home team"
			continue
		}
		if tail == "" {
			reason = "missing away team"
			continue
		}
		team1, contrib1 := splitSide(head)
		team2, contrib2 := splitSide(tail)
		return Match{
			Team1:              team1,
			Score1:             score1,
			Team2:              team2,
			Score2:             score2,
			Team1Contributions: contrib1,
			Team2Contributions: contrib2,
		}, nil
	}
	return Match{}, &ParseError{Input: text, Reason: reason}
}

// scanScore matches `\d+\s*-\s*\d+` starting at i and returns the offset just past it.
func scanScore(text string, i int) (int, int, int, bool) {
	j := i
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	first := text[i:j]
	j = skipSpaces(text, j)
	if j >= len(text) || text[j] != '-' {
		return 0, 0, 0, false
	}
	j = skipSpaces(text, j+1)
	k := j
	for k < len(text) && isDigit(text[k]) {
		k++
	}
	if k == j {
		return 0, 0, 0, false
	}
	s1, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, 0, false
	}
	s2, err := strconv.Atoi(text[j:k])
	if err != nil {
		return 0, 0, 0, false
	}
	return s1, s2, k, true
}

// splitSide separates "Team (a+b, c)" into the team name and the raw player list.
// The list starts at the first "(" after the name and must close the segment.
func splitSide(segment string) (string, string) {
	if !strings.HasSuffix(segment, ")") {
		return segment, ""
	}
	open := strings.Index(segment[1:], "(")
	if open < 0 {
		return segment, ""
	}
	open++
	name := strings.TrimSpace(segment[:open])
	if name == "" {
		return segment, ""
	}
	return name, strings.TrimSpace(segment[open+1 : len(segment)-1])
}

// ParseContributions splits "Messi+Xavi, Neymar" into contributions.
// Entries are split on the first "+"; blank entries are skipped.
func ParseContributions(list string) []Contribution {
	var out []Contribution
	if strings.TrimSpace(list) == "" {
		return out
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		scorer, assistant, found := strings.Cut(entry, "+")
		if !found {
			out = append(out, Contribution{Scorer: entry})
			continue
		}
		out = append(out, Contribution{
			Scorer:    strings.TrimSpace(scorer),
			Assistant: strings.TrimSpace(assistant),
		})
	}
	return out
}

// ParseRosters reads a numbered roster message:
//
//	1.
//	Alice
//	Bob
//	2.
//	Carol
//
// A line starting with a digit and containing "." selects slot N; other lines
// are players for the current slot. Players before the first slot, or in slots
// outside teamNames, are dropped.
func ParseRosters(text string, teamNames []string) []Roster {
	index := make(map[string]int)
	var rosters []Roster
	current := -1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isDigit(line[0]) && strings.Contains(line, ".") {
			number, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(line, ".", 2)[0]))
			if err != nil {
				current = -1
				continue
			}
			current = number - 1
			continue
		}
		if current < 0 || current >= len(teamNames) {
			continue
		}
		team := teamNames[current]
		pos, ok := index[team]
		if !ok {
			pos = len(rosters)
			index[team] = pos
			rosters = append(rosters, Roster{Team: team})
		}
		rosters[pos].Players = append(rosters[pos].Players, line)
	}
	return rosters
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func skipSpaces(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	return i
}
