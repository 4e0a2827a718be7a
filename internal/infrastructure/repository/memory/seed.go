package memory

import (
	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
)

const DemoTournamentID int64 = 1

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, FullName: "Twilight Sparkle"},
		{ID: 2, FullName: "Fluttershy"},
		{ID: 3, FullName: "Applejack"},
		{ID: 4, FullName: "Pinkie Pie"},
		{ID: 5, FullName: "Rarity"},
	}
}

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{ID: DemoTournamentID, Name: "Friendship Open"},
	}
}

// SeedMatches is the first round of the demo tournament: two decisive games and a bye.
func SeedMatches() []match.Match {
	return []match.Match{
		{ID: 1, TournamentID: DemoTournamentID, Result: match.Decisive{Winner: 1, Loser: 2}},
		{ID: 2, TournamentID: DemoTournamentID, Result: match.Decisive{Winner: 3, Loser: 4}},
		{ID: 3, TournamentID: DemoTournamentID, Result: match.Bye{Winner: 5}},
	}
}

// NewSeededStore returns repositories preloaded with the demo tournament.
func NewSeededStore() (*PlayerRepository, *TournamentRepository, *MatchRepository) {
	players := NewPlayerRepository(SeedPlayers())
	tournaments := NewTournamentRepository(players, SeedTournaments())
	for _, p := range SeedPlayers() {
		tournaments.entrants[DemoTournamentID] = append(tournaments.entrants[DemoTournamentID], p.ID)
	}
	return players, tournaments, NewMatchRepository(SeedMatches())
}
