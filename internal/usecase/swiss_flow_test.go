package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/swiss-tournament/internal/domain/swiss"
	"github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/memory"
)

type swissFlow struct {
	players     *PlayerService
	tournaments *TournamentService
	standings   *StandingService
	pairings    *PairingService
}

func newSwissFlow() swissFlow {
	playerRepo := memory.NewPlayerRepository(nil)
	tournamentRepo := memory.NewTournamentRepository(playerRepo, nil)
	matchRepo := memory.NewMatchRepository(nil)

	return swissFlow{
		players:     NewPlayerService(playerRepo),
		tournaments: NewTournamentService(tournamentRepo, playerRepo, matchRepo, nil),
		standings:   NewStandingService(tournamentRepo, matchRepo, 2, nil),
		pairings:    NewPairingService(tournamentRepo, matchRepo, nil),
	}
}

// setup creates a tournament with n registered players and returns the ids in registration order.
func (f swissFlow) setup(t *testing.T, ctx context.Context, n int) (int64, []int64) {
	t.Helper()

	item, err := f.tournaments.Create(ctx, "Spring Open")
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	names := []string{"Twilight Sparkle", "Fluttershy", "Applejack", "Pinkie Pie", "Rarity", "Rainbow Dash"}
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		p, err := f.players.Register(ctx, names[i%len(names)])
		if err != nil {
			t.Fatalf("register player: %v", err)
		}
		if err := f.tournaments.RegisterPlayer(ctx, item.ID, p.ID); err != nil {
			t.Fatalf("register player in tournament: %v", err)
		}
		ids = append(ids, p.ID)
	}
	return item.ID, ids
}

func (f swissFlow) mustReportMatch(t *testing.T, ctx context.Context, tournamentID, winnerID, loserID int64) {
	t.Helper()
	if _, err := f.tournaments.ReportMatch(ctx, tournamentID, winnerID, loserID); err != nil {
		t.Fatalf("report %d beats %d: %v", winnerID, loserID, err)
	}
}

func (f swissFlow) mustReportBye(t *testing.T, ctx context.Context, tournamentID, playerID int64) {
	t.Helper()
	if _, err := f.tournaments.ReportBye(ctx, tournamentID, playerID); err != nil {
		t.Fatalf("report bye for %d: %v", playerID, err)
	}
}

func TestSwissFlow_FreshTournamentPairsEveryone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, ids := f.setup(t, ctx, 4)

	pairings, err := f.pairings.NextRound(ctx, tournamentID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if len(pairings) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairings)
	}

	seen := make(map[int64]int)
	for _, p := range pairings {
		if p.IsBye() {
			t.Fatalf("unexpected bye with an even field: %+v", p)
		}
		seen[p.Player.PlayerID]++
		seen[p.Opponent.PlayerID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Fatalf("player %d appears %d times", id, seen[id])
		}
	}
}

func TestSwissFlow_SecondRoundGroupsByWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, ids := f.setup(t, ctx, 4)
	p1, p2, p3, p4 := ids[0], ids[1], ids[2], ids[3]

	f.mustReportMatch(t, ctx, tournamentID, p1, p2)
	f.mustReportMatch(t, ctx, tournamentID, p3, p4)

	rows, err := f.standings.ListByTournament(ctx, tournamentID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	want := []swiss.Standing{
		{PlayerID: p1, Name: "Twilight Sparkle", Wins: 1, Losses: 0, MatchesPlayed: 1},
		{PlayerID: p3, Name: "Applejack", Wins: 1, Losses: 0, MatchesPlayed: 1},
		{PlayerID: p2, Name: "Fluttershy", Wins: 0, Losses: 1, MatchesPlayed: 1},
		{PlayerID: p4, Name: "Pinkie Pie", Wins: 0, Losses: 1, MatchesPlayed: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("unexpected standings: %+v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got=%+v want=%+v", i, rows[i], want[i])
		}
	}

	pairings, err := f.pairings.NextRound(ctx, tournamentID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if len(pairings) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairings)
	}
	if pairings[0].Player.PlayerID != p1 || pairings[0].Opponent.PlayerID != p3 {
		t.Fatalf("expected winners to meet, got %+v", pairings[0])
	}
	if pairings[1].Player.PlayerID != p2 || pairings[1].Opponent.PlayerID != p4 {
		t.Fatalf("expected losers to meet, got %+v", pairings[1])
	}
}

func TestSwissFlow_ByeIsNotRepeated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, ids := f.setup(t, ctx, 5)
	p1, p2, p3, p4, p5 := ids[0], ids[1], ids[2], ids[3], ids[4]

	f.mustReportMatch(t, ctx, tournamentID, p1, p2)
	f.mustReportMatch(t, ctx, tournamentID, p3, p4)
	f.mustReportBye(t, ctx, tournamentID, p5)

	pairings, err := f.pairings.NextRound(ctx, tournamentID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}

	var byes []int64
	for _, p := range pairings {
		if p.IsBye() {
			byes = append(byes, p.Player.PlayerID)
		}
	}
	if len(byes) != 1 || byes[0] != p4 {
		t.Fatalf("expected the bye to go to %d, got %v (pairings %+v)", p4, byes, pairings)
	}

	if _, err := f.tournaments.ReportBye(ctx, tournamentID, p5); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected a second bye report to conflict, got %v", err)
	}
}

func TestSwissFlow_StrandedPlayersAreReported(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, ids := f.setup(t, ctx, 3)
	p1, p2, p3 := ids[0], ids[1], ids[2]

	f.mustReportMatch(t, ctx, tournamentID, p1, p2)
	f.mustReportBye(t, ctx, tournamentID, p3)
	f.mustReportMatch(t, ctx, tournamentID, p3, p1)
	f.mustReportBye(t, ctx, tournamentID, p2)
	f.mustReportMatch(t, ctx, tournamentID, p3, p2)
	f.mustReportBye(t, ctx, tournamentID, p1)

	pairings, err := f.pairings.NextRound(ctx, tournamentID)
	if !errors.Is(err, ErrUnresolvablePairing) {
		t.Fatalf("expected ErrUnresolvablePairing, got %v (pairings %+v)", err, pairings)
	}
	if pairings != nil {
		t.Fatalf("expected no pairings on failure, got %+v", pairings)
	}

	var unresolved *swiss.UnresolvablePairingError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *swiss.UnresolvablePairingError, got %T", err)
	}
	if len(unresolved.Unplaced) != 3 {
		t.Fatalf("expected all three players stranded, got %v", unresolved.Unplaced)
	}
}

func TestSwissFlow_EmptyTournamentHasNoPairings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, _ := f.setup(t, ctx, 0)

	rows, err := f.standings.ListByTournament(ctx, tournamentID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty standings, got %+v", rows)
	}

	pairings, err := f.pairings.NextRound(ctx, tournamentID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if len(pairings) != 0 {
		t.Fatalf("expected no pairings, got %+v", pairings)
	}
}

func TestSwissFlow_UnknownTournament(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()

	if _, err := f.standings.ListByTournament(ctx, 404); !errors.Is(err, ErrUnknownTournament) {
		t.Fatalf("standings: expected ErrUnknownTournament, got %v", err)
	}
	if _, err := f.pairings.NextRound(ctx, 404); !errors.Is(err, ErrUnknownTournament) {
		t.Fatalf("pairings: expected ErrUnknownTournament, got %v", err)
	}
}

func TestSwissFlow_DeleteMatchesResetsStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, ids := f.setup(t, ctx, 2)
	f.mustReportMatch(t, ctx, tournamentID, ids[0], ids[1])

	if err := f.tournaments.DeleteMatches(ctx, tournamentID); err != nil {
		t.Fatalf("delete matches: %v", err)
	}

	rows, err := f.standings.ListByTournament(ctx, tournamentID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	for _, row := range rows {
		if row.Wins != 0 || row.MatchesPlayed != 0 {
			t.Fatalf("expected reset standings, got %+v", rows)
		}
	}

	// the same pair may meet again once history is cleared
	f.mustReportMatch(t, ctx, tournamentID, ids[1], ids[0])
}

func TestSwissFlow_DeleteTournamentAndCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSwissFlow()
	tournamentID, _ := f.setup(t, ctx, 3)

	count, err := f.tournaments.CountPlayers(ctx, tournamentID)
	if err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count: got=%d want=3", count)
	}

	if err := f.tournaments.UnregisterAll(ctx, tournamentID); err != nil {
		t.Fatalf("unregister all: %v", err)
	}
	if count, _ = f.tournaments.CountPlayers(ctx, tournamentID); count != 0 {
		t.Fatalf("expected no registrations, got %d", count)
	}

	if err := f.tournaments.Delete(ctx, tournamentID); err != nil {
		t.Fatalf("delete tournament: %v", err)
	}
	if _, err := f.tournaments.Get(ctx, tournamentID); !errors.Is(err, ErrUnknownTournament) {
		t.Fatalf("expected deleted tournament to be unknown, got %v", err)
	}
}
