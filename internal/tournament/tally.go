package tournament

// Tally counts goals or assists per player and remembers the order in which
// players first appeared, which leaderboards use to break ties.
type Tally struct {
	counts map[string]int
	order  []string
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increases a player's count, registering the player on first sight.
func (t *Tally) Add(player string, n int) {
	if _, ok := t.counts[player]; !ok {
		t.order = append(t.order, player)
	}
	t.counts[player] += n
}

// Sub decreases a player's count and drops the player once it reaches zero.
// Unknown players are ignored.
func (t *Tally) Sub(player string, n int) {
	if _, ok := t.counts[player]; !ok {
		return
	}
	t.counts[player] -= n
	if t.counts[player] <= 0 {
		t.remove(player)
	}
}

func (t *Tally) remove(player string) {
	delete(t.counts, player)
	for i, p := range t.order {
		if p == player {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *Tally) Get(player string) int {
	return t.counts[player]
}

func (t *Tally) Len() int {
	return len(t.order)
}

// Total is the sum of all counts.
func (t *Tally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Entries returns the counts in first-appearance order.
func (t *Tally) Entries() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(t.order))
	for _, p := range t.order {
		entries = append(entries, LeaderboardEntry{Player: p, Count: t.counts[p]})
	}
	return entries
}

// Map returns a copy of the counts.
func (t *Tally) Map() map[string]int {
	out := make(map[string]int, len(t.counts))
	for p, n := range t.counts {
		out[p] = n
	}
	return out
}

func (t *Tally) clone() *Tally {
	c := &Tally{counts: t.Map(), order: make([]string, len(t.order))}
	copy(c.order, t.order)
	return c
}
