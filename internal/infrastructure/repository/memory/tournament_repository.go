package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
)

// TournamentRepository resolves registered player names through the player
// repository, so registrations of deleted players disappear from listings.
type TournamentRepository struct {
	mu          sync.RWMutex
	lastID      int64
	tournaments map[int64]tournament.Tournament
	entrants    map[int64][]int64
	players     *PlayerRepository
}

func NewTournamentRepository(players *PlayerRepository, tournaments []tournament.Tournament) *TournamentRepository {
	if players == nil {
		players = NewPlayerRepository(nil)
	}
	repo := &TournamentRepository{
		tournaments: make(map[int64]tournament.Tournament, len(tournaments)),
		entrants:    make(map[int64][]int64),
		players:     players,
	}
	for _, item := range tournaments {
		repo.tournaments[item.ID] = item
		repo.lastID = max(repo.lastID, item.ID)
	}
	return repo
}

func (r *TournamentRepository) Create(_ context.Context, name string) (tournament.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	item := tournament.Tournament{ID: r.lastID, Name: name}
	r.tournaments[item.ID] = item
	return item, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.tournaments[tournamentID]
	return item, ok, nil
}

func (r *TournamentRepository) Delete(_ context.Context, tournamentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tournaments, tournamentID)
	delete(r.entrants, tournamentID)
	return nil
}

func (r *TournamentRepository) RegisterPlayer(_ context.Context, tournamentID, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.entrants[tournamentID], playerID) {
		return tournament.ErrAlreadyRegistered
	}
	r.entrants[tournamentID] = append(r.entrants[tournamentID], playerID)
	return nil
}

func (r *TournamentRepository) IsRegistered(_ context.Context, tournamentID, playerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Contains(r.entrants[tournamentID], playerID), nil
}

func (r *TournamentRepository) ListPlayers(_ context.Context, tournamentID int64) ([]player.Player, error) {
	r.mu.RLock()
	ids := slices.Clone(r.entrants[tournamentID])
	r.mu.RUnlock()

	return r.players.lookup(ids), nil
}

func (r *TournamentRepository) CountPlayers(ctx context.Context, tournamentID int64) (int, error) {
	items, err := r.ListPlayers(ctx, tournamentID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *TournamentRepository) UnregisterAll(_ context.Context, tournamentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entrants, tournamentID)
	return nil
}
