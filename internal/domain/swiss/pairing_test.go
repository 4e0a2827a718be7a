package swiss

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
)

func entrants(n int) []Entrant {
	out := make([]Entrant, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Entrant{PlayerID: int64(i), Name: "player-" + string(rune('a'+i-1))})
	}
	return out
}

func historyFrom(results []match.Result) History {
	return NewHistory(match.PlayedPairs(results), match.ByeRecipients(results))
}

func pairSet(pairings []Pairing) map[match.PairKey]struct{} {
	out := make(map[match.PairKey]struct{}, len(pairings))
	for _, p := range pairings {
		if p.IsBye() {
			continue
		}
		out[match.NewPairKey(p.Player.PlayerID, p.Opponent.PlayerID)] = struct{}{}
	}
	return out
}

func assertRoundInvariants(t *testing.T, pairings []Pairing, history History) {
	t.Helper()

	seen := make(map[int64]struct{})
	book := func(id int64) {
		if _, dup := seen[id]; dup {
			t.Fatalf("player %d booked twice in %+v", id, pairings)
		}
		seen[id] = struct{}{}
	}

	byes := 0
	for _, p := range pairings {
		book(p.Player.PlayerID)
		if p.IsBye() {
			byes++
			if history.HadBye(p.Player.PlayerID) {
				t.Fatalf("player %d received a second bye", p.Player.PlayerID)
			}
			continue
		}
		book(p.Opponent.PlayerID)
		if history.HasPlayed(p.Player.PlayerID, p.Opponent.PlayerID) {
			t.Fatalf("rematch scheduled: %d vs %d", p.Player.PlayerID, p.Opponent.PlayerID)
		}
	}
	if byes > 1 {
		t.Fatalf("expected at most one bye, got %d", byes)
	}
}

func TestPair_FourFreshPlayersAllPaired(t *testing.T) {
	standings := ComputeStandings(entrants(4), nil)

	got, err := Pair(standings, NewHistory(nil, nil))
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got))
	}
	assertRoundInvariants(t, got, NewHistory(nil, nil))

	covered := make(map[int64]bool)
	for _, p := range got {
		if p.IsBye() {
			t.Fatalf("did not expect a bye for an even field: %+v", p)
		}
		covered[p.Player.PlayerID] = true
		covered[p.Opponent.PlayerID] = true
	}
	if len(covered) != 4 {
		t.Fatalf("expected all 4 players covered, got %v", covered)
	}
}

func TestPair_WinnersMeetWinners(t *testing.T) {
	results := []match.Result{
		match.Decisive{Winner: 1, Loser: 2},
		match.Decisive{Winner: 3, Loser: 4},
	}
	standings := ComputeStandings(entrants(4), results)
	if standings[0].PlayerID != 1 || standings[1].PlayerID != 3 {
		t.Fatalf("expected winners on top, got %+v", standings)
	}

	got, err := Pair(standings, historyFrom(results))
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}

	want := map[match.PairKey]struct{}{
		match.NewPairKey(1, 3): {},
		match.NewPairKey(2, 4): {},
	}
	if !reflect.DeepEqual(pairSet(got), want) {
		t.Fatalf("unexpected pairs: %+v", got)
	}
	if got[0].Player.Name != "player-a" || got[0].Opponent.Name != "player-c" {
		t.Fatalf("expected names resolved from standings, got %+v / %+v", got[0].Player, got[0].Opponent)
	}
}

func TestPair_PreviousByeRecipientSkipped(t *testing.T) {
	results := []match.Result{
		match.Decisive{Winner: 1, Loser: 2},
		match.Decisive{Winner: 3, Loser: 4},
		match.Bye{Winner: 5},
	}
	history := historyFrom(results)

	got, err := Pair(ComputeStandings(entrants(5), results), history)
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	assertRoundInvariants(t, got, history)

	last := got[len(got)-1]
	if !last.IsBye() || last.Player.PlayerID != 4 {
		t.Fatalf("expected player 4 to take the bye, got %+v", got)
	}
}

func TestPair_StrandedByeRecipientIsReported(t *testing.T) {
	results := []match.Result{
		match.Bye{Winner: 5},
		match.Decisive{Winner: 5, Loser: 1},
		match.Decisive{Winner: 5, Loser: 2},
		match.Decisive{Winner: 5, Loser: 3},
		match.Decisive{Winner: 5, Loser: 4},
	}

	got, err := Pair(ComputeStandings(entrants(5), results), historyFrom(results))
	if !errors.Is(err, ErrUnresolvablePairing) {
		t.Fatalf("expected ErrUnresolvablePairing, got pairings=%+v err=%v", got, err)
	}
	if got != nil {
		t.Fatalf("expected no pairings on error, got %+v", got)
	}

	var unresolved *UnresolvablePairingError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *UnresolvablePairingError, got %T", err)
	}
	if len(unresolved.Unplaced) != 1 || unresolved.Unplaced[0] != 5 {
		t.Fatalf("expected player 5 stranded, got %+v", unresolved.Unplaced)
	}
	if len(unresolved.Partial) != 2 {
		t.Fatalf("expected 2 partial pairs, got %+v", unresolved.Partial)
	}
}

func TestPair_NoPlayersNoPairings(t *testing.T) {
	got, err := Pair(ComputeStandings(nil, nil), NewHistory(nil, nil))
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no pairings, got %+v", got)
	}
}

func TestPair_SinglePlayerGetsBye(t *testing.T) {
	got, err := Pair(ComputeStandings(entrants(1), nil), NewHistory(nil, nil))
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	if len(got) != 1 || !got[0].IsBye() || got[0].Player.PlayerID != 1 {
		t.Fatalf("expected a single bye, got %+v", got)
	}
}

func TestPair_GreedyCanStrandTwoPlayers(t *testing.T) {
	// A perfect matching (1-4, 2-3) exists, but first-fit takes 1-2 and leaves 3 and 4
	// who already met.
	history := NewHistory([]match.PairKey{
		match.NewPairKey(1, 3),
		match.NewPairKey(3, 4),
	}, nil)

	_, err := Pair(ComputeStandings(entrants(4), nil), history)
	var unresolved *UnresolvablePairingError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *UnresolvablePairingError, got %v", err)
	}
	if !reflect.DeepEqual(unresolved.Unplaced, []int64{3, 4}) {
		t.Fatalf("unexpected stranded players: %+v", unresolved.Unplaced)
	}
	if !errors.Is(err, ErrUnresolvablePairing) {
		t.Fatalf("expected error to match ErrUnresolvablePairing")
	}
}

func TestPair_RespectsRematchInBothOrders(t *testing.T) {
	results := []match.Result{match.Decisive{Winner: 2, Loser: 1}}
	standings := []Standing{
		{PlayerID: 1, Name: "a"},
		{PlayerID: 2, Name: "b"},
		{PlayerID: 3, Name: "c"},
		{PlayerID: 4, Name: "d"},
	}

	got, err := Pair(standings, historyFrom(results))
	if err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	if _, ok := pairSet(got)[match.NewPairKey(1, 2)]; ok {
		t.Fatalf("players 1 and 2 were re-paired: %+v", got)
	}
}

func TestPair_IsIdempotent(t *testing.T) {
	results := []match.Result{
		match.Decisive{Winner: 1, Loser: 2},
		match.Decisive{Winner: 3, Loser: 4},
		match.Bye{Winner: 5},
		match.Decisive{Winner: 6, Loser: 7},
	}
	standings := ComputeStandings(entrants(7), results)
	history := historyFrom(results)

	first, err := Pair(standings, history)
	if err != nil {
		t.Fatalf("first Pair error: %v", err)
	}
	second, err := Pair(standings, history)
	if err != nil {
		t.Fatalf("second Pair error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical rounds:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPair_DoesNotMutateInput(t *testing.T) {
	standings := []Standing{
		{PlayerID: 2, Name: "b"},
		{PlayerID: 1, Name: "a", Wins: 1, MatchesPlayed: 1},
	}
	before := append([]Standing(nil), standings...)

	if _, err := Pair(standings, NewHistory(nil, nil)); err != nil {
		t.Fatalf("Pair error: %v", err)
	}
	if !reflect.DeepEqual(before, standings) {
		t.Fatalf("input standings were mutated: %+v", standings)
	}
}

func TestPair_SimulatedTournamentsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{2, 3, 5, 6, 7, 8, 9, 12, 15} {
		field := entrants(size)
		var results []match.Result

		for round := 0; round < size/2; round++ {
			history := historyFrom(results)
			pairings, err := Pair(ComputeStandings(field, results), history)
			if errors.Is(err, ErrUnresolvablePairing) {
				break
			}
			if err != nil {
				t.Fatalf("size=%d round=%d: unexpected error %v", size, round, err)
			}
			assertRoundInvariants(t, pairings, history)

			for _, p := range pairings {
				if p.IsBye() {
					results = append(results, match.Bye{Winner: p.Player.PlayerID})
					continue
				}
				if rng.Intn(2) == 0 {
					results = append(results, match.Decisive{Winner: p.Player.PlayerID, Loser: p.Opponent.PlayerID})
				} else {
					results = append(results, match.Decisive{Winner: p.Opponent.PlayerID, Loser: p.Player.PlayerID})
				}
			}
		}

		for _, row := range ComputeStandings(field, results) {
			if row.MatchesPlayed != row.Wins+row.Losses {
				t.Fatalf("size=%d: inconsistent row %+v", size, row)
			}
		}
	}
}
