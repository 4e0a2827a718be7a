package guarded

import (
	"context"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/resilience"
)

type PlayerRepository struct {
	next player.Repository
	guard
}

func NewPlayerRepository(next player.Repository, breaker *resilience.CircuitBreaker) *PlayerRepository {
	return &PlayerRepository{next: next, guard: guard{breaker: breaker}}
}

func (r *PlayerRepository) Create(ctx context.Context, fullName string) (player.Player, error) {
	return call(r.guard, "create player", func() (player.Player, error) {
		return r.next.Create(ctx, fullName)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	var exists bool
	item, err := call(r.guard, "get player", func() (player.Player, error) {
		item, ok, err := r.next.GetByID(ctx, playerID)
		exists = ok
		return item, err
	})
	return item, exists, err
}

func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	return r.do("delete players", func() error {
		return r.next.DeleteAll(ctx)
	})
}

type TournamentRepository struct {
	next tournament.Repository
	guard
}

func NewTournamentRepository(next tournament.Repository, breaker *resilience.CircuitBreaker) *TournamentRepository {
	return &TournamentRepository{next: next, guard: guard{breaker: breaker}}
}

func (r *TournamentRepository) Create(ctx context.Context, name string) (tournament.Tournament, error) {
	return call(r.guard, "create tournament", func() (tournament.Tournament, error) {
		return r.next.Create(ctx, name)
	})
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	var exists bool
	item, err := call(r.guard, "get tournament", func() (tournament.Tournament, error) {
		item, ok, err := r.next.GetByID(ctx, tournamentID)
		exists = ok
		return item, err
	})
	return item, exists, err
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	return r.do("delete tournament", func() error {
		return r.next.Delete(ctx, tournamentID)
	})
}

func (r *TournamentRepository) RegisterPlayer(ctx context.Context, tournamentID, playerID int64) error {
	return r.do("register player", func() error {
		return r.next.RegisterPlayer(ctx, tournamentID, playerID)
	})
}

func (r *TournamentRepository) IsRegistered(ctx context.Context, tournamentID, playerID int64) (bool, error) {
	return call(r.guard, "check registration", func() (bool, error) {
		return r.next.IsRegistered(ctx, tournamentID, playerID)
	})
}

func (r *TournamentRepository) ListPlayers(ctx context.Context, tournamentID int64) ([]player.Player, error) {
	return call(r.guard, "list tournament players", func() ([]player.Player, error) {
		return r.next.ListPlayers(ctx, tournamentID)
	})
}

func (r *TournamentRepository) CountPlayers(ctx context.Context, tournamentID int64) (int, error) {
	return call(r.guard, "count players", func() (int, error) {
		return r.next.CountPlayers(ctx, tournamentID)
	})
}

func (r *TournamentRepository) UnregisterAll(ctx context.Context, tournamentID int64) error {
	return r.do("delete tournament players", func() error {
		return r.next.UnregisterAll(ctx, tournamentID)
	})
}

type MatchRepository struct {
	next match.Repository
	guard
}

func NewMatchRepository(next match.Repository, breaker *resilience.CircuitBreaker) *MatchRepository {
	return &MatchRepository{next: next, guard: guard{breaker: breaker}}
}

func (r *MatchRepository) Record(ctx context.Context, tournamentID int64, result match.Result) (match.Match, error) {
	return call(r.guard, "record match", func() (match.Match, error) {
		return r.next.Record(ctx, tournamentID, result)
	})
}

func (r *MatchRepository) ListResults(ctx context.Context, tournamentID int64) ([]match.Result, error) {
	return call(r.guard, "list match results", func() ([]match.Result, error) {
		return r.next.ListResults(ctx, tournamentID)
	})
}

func (r *MatchRepository) ListPlayedPairs(ctx context.Context, tournamentID int64) ([]match.PairKey, error) {
	return call(r.guard, "list played pairs", func() ([]match.PairKey, error) {
		return r.next.ListPlayedPairs(ctx, tournamentID)
	})
}

func (r *MatchRepository) ListByeRecipients(ctx context.Context, tournamentID int64) ([]int64, error) {
	return call(r.guard, "list bye recipients", func() ([]int64, error) {
		return r.next.ListByeRecipients(ctx, tournamentID)
	})
}

func (r *MatchRepository) DeleteByTournament(ctx context.Context, tournamentID int64) error {
	return r.do("delete tournament matches", func() error {
		return r.next.DeleteByTournament(ctx, tournamentID)
	})
}
