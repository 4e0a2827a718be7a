package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
)

func requireTournament(ctx context.Context, repo tournament.Repository, tournamentID int64) (tournament.Tournament, error) {
	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id must be > 0", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, storageError("get tournament", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrUnknownTournament, tournamentID)
	}

	return item, nil
}
