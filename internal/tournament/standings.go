package tournament

import "sort"

const formLength = 3

// Standings builds the league table from the recorded matches.
// Rows are ordered by points, then goal difference, then goals scored;
// teams still level keep the order in which they first appeared.
func Standings(matches []Match) []TeamStanding {
	index := make(map[string]int)
	var table []TeamStanding

	row := func(team string) *TeamStanding {
		pos, ok := index[team]
		if !ok {
			pos = len(table)
			index[team] = pos
			table = append(table, TeamStanding{Team: team})
		}
		return &table[pos]
	}

	for _, m := range matches {
		// Both rows must exist before taking pointers, the slice may grow.
		row(m.Team1)
		row(m.Team2)
		home, away := row(m.Team1), row(m.Team2)

		home.Played++
		away.Played++
		home.GoalsFor += m.Score1
		home.GoalsAgainst += m.Score2
		away.GoalsFor += m.Score2
		away.GoalsAgainst += m.Score1

		switch {
		case m.Score1 > m.Score2:
			home.Won++
			home.Points += 3
			away.Lost++
			home.Form = append(home.Form, Win)
			away.Form = append(away.Form, Loss)
		case m.Score1 < m.Score2:
			away.Won++
			away.Points += 3
			home.Lost++
			away.Form = append(away.Form, Win)
			home.Form = append(home.Form, Loss)
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
			home.Form = append(home.Form, Draw)
			away.Form = append(away.Form, Draw)
		}
	}

	for i := range table {
		if n := len(table[i].Form); n > formLength {
			table[i].Form = table[i].Form[n-formLength:]
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		return a.GoalsFor > b.GoalsFor
	})
	return table
}
