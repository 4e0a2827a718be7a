package swiss

import (
	"sort"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
)

// Entrant is a player registered in the tournament being ranked.
type Entrant struct {
	PlayerID int64
	Name     string
}

// Standing is one derived row of the tournament table.
type Standing struct {
	PlayerID      int64
	Name          string
	Wins          int
	Losses        int
	MatchesPlayed int
}

// ComputeStandings ranks every entrant by wins. Entrants without matches get a zero row.
// Results naming players outside entrants are ignored.
func ComputeStandings(entrants []Entrant, results []match.Result) []Standing {
	index := make(map[int64]*Standing, len(entrants))
	rows := make([]*Standing, 0, len(entrants))
	for _, e := range entrants {
		if _, dup := index[e.PlayerID]; dup {
			continue
		}
		row := &Standing{PlayerID: e.PlayerID, Name: e.Name}
		index[e.PlayerID] = row
		rows = append(rows, row)
	}

	for _, r := range results {
		if row, ok := index[r.WinnerID()]; ok {
			row.Wins++
		}
		if d, ok := r.(match.Decisive); ok {
			if row, ok := index[d.Loser]; ok {
				row.Losses++
			}
		}
	}

	out := make([]Standing, 0, len(rows))
	for _, row := range rows {
		row.MatchesPlayed = row.Wins + row.Losses
		out = append(out, *row)
	}
	SortStandings(out)

	return out
}

// SortStandings orders rows by wins descending, then by ascending player id.
func SortStandings(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}
