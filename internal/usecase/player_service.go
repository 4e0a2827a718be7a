package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
)

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// Register stores a new player. Names need not be unique.
func (s *PlayerService) Register(ctx context.Context, fullName string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Register")
	defer span.End()

	fullName = strings.TrimSpace(fullName)
	if err := (player.Player{FullName: fullName}).Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.playerRepo.Create(ctx, fullName)
	if err != nil {
		return player.Player{}, storageError("create player", err)
	}

	return item, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, storageError("get player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	return item, nil
}

// DeleteAll removes every player. Tournament links go with them.
func (s *PlayerService) DeleteAll(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeleteAll")
	defer span.End()

	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return storageError("delete players", err)
	}
	return nil
}
