package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
)

type MatchRepository struct {
	mu                  sync.RWMutex
	lastID              int64
	matchesByTournament map[int64][]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	repo := &MatchRepository{matchesByTournament: make(map[int64][]match.Match)}
	for _, item := range matches {
		repo.matchesByTournament[item.TournamentID] = append(repo.matchesByTournament[item.TournamentID], item)
		repo.lastID = max(repo.lastID, item.ID)
	}
	return repo
}

func (r *MatchRepository) Record(_ context.Context, tournamentID int64, result match.Result) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	item := match.Match{ID: r.lastID, TournamentID: tournamentID, Result: result}
	r.matchesByTournament[tournamentID] = append(r.matchesByTournament[tournamentID], item)
	return item, nil
}

func (r *MatchRepository) ListResults(_ context.Context, tournamentID int64) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.matchesByTournament[tournamentID]
	out := make([]match.Result, 0, len(items))
	for _, item := range items {
		out = append(out, item.Result)
	}
	return out, nil
}

func (r *MatchRepository) ListPlayedPairs(ctx context.Context, tournamentID int64) ([]match.PairKey, error) {
	results, err := r.ListResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return match.PlayedPairs(results), nil
}

func (r *MatchRepository) ListByeRecipients(ctx context.Context, tournamentID int64) ([]int64, error) {
	results, err := r.ListResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return match.ByeRecipients(results), nil
}

func (r *MatchRepository) DeleteByTournament(_ context.Context, tournamentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matchesByTournament, tournamentID)
	return nil
}
