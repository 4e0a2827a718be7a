package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	basecache "github.com/riskibarqy/swiss-tournament/internal/platform/cache"
)

// Keys: "player:id:<id>", "tournament:id:<id>" and per-tournament membership
// under "tournament:<id>:" so one prefix drops everything a registration touches.
const (
	playerKeyPrefix     = "player:"
	tournamentKeyPrefix = "tournament:"
)

func playerKey(playerID int64) string {
	return playerKeyPrefix + "id:" + strconv.FormatInt(playerID, 10)
}

func tournamentKey(tournamentID int64) string {
	return tournamentKeyPrefix + "id:" + strconv.FormatInt(tournamentID, 10)
}

func membershipPrefix(tournamentID int64) string {
	return tournamentKeyPrefix + strconv.FormatInt(tournamentID, 10) + ":"
}

type cachedLookup[T any] struct {
	value  T
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Create(ctx context.Context, fullName string) (player.Player, error) {
	item, err := r.next.Create(ctx, fullName)
	if err != nil {
		return player.Player{}, err
	}
	r.cache.Delete(ctx, playerKey(item.ID))
	return item, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerKey(playerID), func(ctx context.Context) (cachedLookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedLookup[player.Player]{}, err
		}
		return cachedLookup[player.Player]{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

// DeleteAll also drops cached rosters, which list players by name.
func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	if err := r.next.DeleteAll(ctx); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerKeyPrefix, tournamentKeyPrefix)
	return nil
}

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Create(ctx context.Context, name string) (tournament.Tournament, error) {
	item, err := r.next.Create(ctx, name)
	if err != nil {
		return tournament.Tournament{}, err
	}
	r.invalidate(ctx, item.ID)
	return item, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, tournamentKey(tournamentID), func(ctx context.Context) (cachedLookup[tournament.Tournament], error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return cachedLookup[tournament.Tournament]{}, err
		}
		return cachedLookup[tournament.Tournament]{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	err := r.next.Delete(ctx, tournamentID)
	r.invalidate(ctx, tournamentID)
	return err
}

func (r *TournamentRepository) RegisterPlayer(ctx context.Context, tournamentID, playerID int64) error {
	err := r.next.RegisterPlayer(ctx, tournamentID, playerID)
	r.cache.DeletePrefix(ctx, membershipPrefix(tournamentID))
	return err
}

func (r *TournamentRepository) IsRegistered(ctx context.Context, tournamentID, playerID int64) (bool, error) {
	key := membershipPrefix(tournamentID) + "registered:" + strconv.FormatInt(playerID, 10)
	return basecache.Load(ctx, r.cache, key, func(ctx context.Context) (bool, error) {
		return r.next.IsRegistered(ctx, tournamentID, playerID)
	})
}

func (r *TournamentRepository) ListPlayers(ctx context.Context, tournamentID int64) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, membershipPrefix(tournamentID)+"players", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListPlayers(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *TournamentRepository) CountPlayers(ctx context.Context, tournamentID int64) (int, error) {
	return basecache.Load(ctx, r.cache, membershipPrefix(tournamentID)+"count", func(ctx context.Context) (int, error) {
		return r.next.CountPlayers(ctx, tournamentID)
	})
}

func (r *TournamentRepository) UnregisterAll(ctx context.Context, tournamentID int64) error {
	err := r.next.UnregisterAll(ctx, tournamentID)
	r.cache.DeletePrefix(ctx, membershipPrefix(tournamentID))
	return err
}

func (r *TournamentRepository) invalidate(ctx context.Context, tournamentID int64) {
	r.cache.Delete(ctx, tournamentKey(tournamentID))
	r.cache.DeletePrefix(ctx, membershipPrefix(tournamentID))
}
