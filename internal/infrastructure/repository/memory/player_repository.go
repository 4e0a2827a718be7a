package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	lastID  int64
	players map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{players: make(map[int64]player.Player, len(players))}
	for _, p := range players {
		repo.players[p.ID] = p
		repo.lastID = max(repo.lastID, p.ID)
	}
	return repo
}

func (r *PlayerRepository) Create(_ context.Context, fullName string) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	item := player.Player{ID: r.lastID, FullName: fullName}
	r.players[item.ID] = item
	return item, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

// DeleteAll clears players but keeps the id sequence running, like a serial column.
func (r *PlayerRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.players)
	return nil
}

func (r *PlayerRepository) lookup(ids []int64) []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.players[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
