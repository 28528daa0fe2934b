package tournament

import "sort"

// Leaderboard sorts a tally by count, highest first. Equal counts keep
// first-appearance order.
func Leaderboard(t *Tally) []LeaderboardEntry {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
