package tournament

import (
	"context"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
)

// Repository describes tournament and membership persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, name string) (Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	Delete(ctx context.Context, tournamentID int64) error
	RegisterPlayer(ctx context.Context, tournamentID, playerID int64) error
	IsRegistered(ctx context.Context, tournamentID, playerID int64) (bool, error)
	ListPlayers(ctx context.Context, tournamentID int64) ([]player.Player, error)
	CountPlayers(ctx context.Context, tournamentID int64) (int, error)
	UnregisterAll(ctx context.Context, tournamentID int64) error
}
