package tournament

import "github.com/google/uuid"

// logEntry is one applied result together with the contributions it credited.
// Undo reverts exactly these contributions.
type logEntry struct {
	match         Match
	contributions []Contribution
}

// ChatState is the live tournament of a single chat. It is not safe for
// concurrent use; callers serialize access per chat.
type ChatState struct {
	log       []logEntry
	goals     *Tally
	assists   *Tally
	rosters   []Roster
	finished  bool
	finishing bool
	// id names the tournament in the archive. It is assigned by the first
	// BeginFinish and survives failed attempts so a retry replaces that record.
	id string
}

func NewChatState() *ChatState {
	return &ChatState{
		goals:   NewTally(),
		assists: NewTally(),
	}
}

// AddMatch appends a result and credits its goals and assists.
func (s *ChatState) AddMatch(m Match) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	e := logEntry{match: m, contributions: m.Contributions()}
	s.apply(e)
	s.log = append(s.log, e)
	return nil
}

// UndoLast removes the most recent result and reverts its tallies.
func (s *ChatState) UndoLast() (Match, error) {
	if err := s.checkOpen(); err != nil {
		return Match{}, err
	}
	if len(s.log) == 0 {
		return Match{}, ErrEmptyHistory
	}
	last := s.log[len(s.log)-1]
	s.log = s.log[:len(s.log)-1]
	s.revert(last)
	return last.match, nil
}

func (s *ChatState) apply(e logEntry) {
	for _, c := range e.contributions {
		if c.Scorer != "" {
			s.goals.Add(c.Scorer, 1)
		}
		if c.Assistant != "" {
			s.assists.Add(c.Assistant, 1)
		}
	}
}

func (s *ChatState) revert(e logEntry) {
	for _, c := range e.contributions {
		if c.Scorer != "" {
			s.goals.Sub(c.Scorer, 1)
		}
		if c.Assistant != "" {
			s.assists.Sub(c.Assistant, 1)
		}
	}
}

// Reset clears matches and tallies. Rosters are kept.
func (s *ChatState) Reset() {
	s.log = nil
	s.goals = NewTally()
	s.assists = NewTally()
	s.finished = false
	s.finishing = false
	s.id = ""
}

// Matches returns the recorded results in order.
func (s *ChatState) Matches() []Match {
	out := make([]Match, len(s.log))
	for i, e := range s.log {
		out[i] = e.match
	}
	return out
}

func (s *ChatState) Goals() *Tally   { return s.goals }
func (s *ChatState) Assists() *Tally { return s.assists }

// SetRosters replaces the rosters, merging players into already known slots.
func (s *ChatState) SetRosters(rosters []Roster) {
	for _, r := range rosters {
		merged := false
		for i := range s.rosters {
			if s.rosters[i].Team == r.Team {
				s.rosters[i].Players = append(s.rosters[i].Players, r.Players...)
				merged = true
				break
			}
		}
		if !merged {
			s.rosters = append(s.rosters, Roster{Team: r.Team, Players: append([]string(nil), r.Players...)})
		}
	}
}

func (s *ChatState) Rosters() []Roster {
	out := make([]Roster, len(s.rosters))
	for i, r := range s.rosters {
		out[i] = Roster{Team: r.Team, Players: append([]string(nil), r.Players...)}
	}
	return out
}

func (s *ChatState) Finished() bool { return s.finished }

// Finishing reports whether an end is being handed to the sinks.
func (s *ChatState) Finishing() bool { return s.finishing }

func (s *ChatState) checkOpen() error {
	switch {
	case s.finished:
		return ErrTournamentFinished
	case s.finishing:
		return ErrFinishInProgress
	}
	return nil
}

// BeginFinish freezes the tournament while it is written to the sinks.
// Exactly one caller wins until AbortFinish or MarkFinished.
func (s *ChatState) BeginFinish() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.finishing = true
	return nil
}

// AbortFinish reopens the tournament after a failed hand-off.
func (s *ChatState) AbortFinish() { s.finishing = false }

// MarkFinished freezes the tournament until the next Reset.
func (s *ChatState) MarkFinished() {
	s.finishing = false
	s.finished = true
}

// MVP returns the players with the highest goals+assists and that total.
func (s *ChatState) MVP() ([]string, int) {
	combined := s.goals.clone()
	for _, e := range s.assists.Entries() {
		combined.Add(e.Player, e.Count)
	}
	best := 0
	var players []string
	for _, e := range combined.Entries() {
		switch {
		case e.Count > best:
			best = e.Count
			players = []string{e.Player}
		case e.Count == best:
			players = append(players, e.Player)
		}
	}
	return players, best
}

// Summary freezes the state for the archive and spreadsheet sinks.
func (s *ChatState) Summary(chatID, date string) Summary {
	return Summary{
		ID:      s.id,
		ChatID:  chatID,
		Date:    date,
		Rosters: s.Rosters(),
		Matches: s.Matches(),
		Goals:   s.goals.Entries(),
		Assists: s.assists.Entries(),
	}
}
