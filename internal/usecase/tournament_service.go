package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
)

type TournamentService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	matchRepo      match.Repository
	logger         *logging.Logger
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

func (s *TournamentService) Create(ctx context.Context, name string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := (tournament.Tournament{Name: name}).Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.tournamentRepo.Create(ctx, name)
	if err != nil {
		return tournament.Tournament{}, storageError("create tournament", err)
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get", tournamentAttr(tournamentID))
	defer span.End()

	return requireTournament(ctx, s.tournamentRepo, tournamentID)
}

// Delete removes the tournament together with its matches and registrations.
func (s *TournamentService) Delete(ctx context.Context, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return err
	}
	if err := s.matchRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return storageError("delete tournament matches", err)
	}
	if err := s.tournamentRepo.UnregisterAll(ctx, tournamentID); err != nil {
		return storageError("delete tournament players", err)
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		return storageError("delete tournament", err)
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", tournamentID)
	return nil
}

func (s *TournamentService) RegisterPlayer(ctx context.Context, tournamentID, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RegisterPlayer", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return err
	}
	if playerID <= 0 {
		return fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return storageError("get player", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	if err := s.tournamentRepo.RegisterPlayer(ctx, tournamentID, playerID); err != nil {
		if errors.Is(err, tournament.ErrAlreadyRegistered) {
			return fmt.Errorf("%w: %w: tournament=%d player=%d", ErrConflict, err, tournamentID, playerID)
		}
		return storageError("register player", err)
	}

	return nil
}

func (s *TournamentService) CountPlayers(ctx context.Context, tournamentID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CountPlayers", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return 0, err
	}

	count, err := s.tournamentRepo.CountPlayers(ctx, tournamentID)
	if err != nil {
		return 0, storageError("count players", err)
	}

	return count, nil
}

// UnregisterAll drops every registration of the tournament. Players themselves are kept.
func (s *TournamentService) UnregisterAll(ctx context.Context, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UnregisterAll", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return err
	}
	if err := s.tournamentRepo.UnregisterAll(ctx, tournamentID); err != nil {
		return storageError("delete tournament players", err)
	}

	return nil
}

// ReportMatch records a decisive result between two registered players who have not met yet.
func (s *TournamentService) ReportMatch(ctx context.Context, tournamentID, winnerID, loserID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ReportMatch", tournamentAttr(tournamentID))
	defer span.End()

	return s.report(ctx, tournamentID, match.Decisive{Winner: winnerID, Loser: loserID})
}

// ReportBye records a free win. A player can receive at most one bye per tournament.
func (s *TournamentService) ReportBye(ctx context.Context, tournamentID, playerID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ReportBye", tournamentAttr(tournamentID))
	defer span.End()

	return s.report(ctx, tournamentID, match.Bye{Winner: playerID})
}

func (s *TournamentService) report(ctx context.Context, tournamentID int64, result match.Result) (match.Match, error) {
	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return match.Match{}, err
	}
	if err := match.Validate(result); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch v := result.(type) {
	case match.Decisive:
		if err := s.requireRegistered(ctx, tournamentID, v.Winner, v.Loser); err != nil {
			return match.Match{}, err
		}
		pairs, err := s.matchRepo.ListPlayedPairs(ctx, tournamentID)
		if err != nil {
			return match.Match{}, storageError("list played pairs", err)
		}
		if slices.Contains(pairs, match.NewPairKey(v.Winner, v.Loser)) {
			return match.Match{}, fmt.Errorf("%w: players %d and %d already met in tournament=%d", ErrConflict, v.Winner, v.Loser, tournamentID)
		}
	case match.Bye:
		if err := s.requireRegistered(ctx, tournamentID, v.Winner); err != nil {
			return match.Match{}, err
		}
		byes, err := s.matchRepo.ListByeRecipients(ctx, tournamentID)
		if err != nil {
			return match.Match{}, storageError("list bye recipients", err)
		}
		if slices.Contains(byes, v.Winner) {
			return match.Match{}, fmt.Errorf("%w: player %d already received a bye in tournament=%d", ErrConflict, v.Winner, tournamentID)
		}
	}

	recorded, err := s.matchRepo.Record(ctx, tournamentID, result)
	if err != nil {
		return match.Match{}, storageError("record match", err)
	}

	s.logger.InfoContext(ctx, "match reported",
		"tournament_id", tournamentID,
		"match_id", recorded.ID,
		"winner_id", result.WinnerID(),
	)
	return recorded, nil
}

func (s *TournamentService) requireRegistered(ctx context.Context, tournamentID int64, playerIDs ...int64) error {
	for _, playerID := range playerIDs {
		registered, err := s.tournamentRepo.IsRegistered(ctx, tournamentID, playerID)
		if err != nil {
			return storageError("check registration", err)
		}
		if !registered {
			return fmt.Errorf("%w: player %d is not registered in tournament=%d", ErrInvalidInput, playerID, tournamentID)
		}
	}

	return nil
}

func (s *TournamentService) DeleteMatches(ctx context.Context, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DeleteMatches", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return err
	}
	if err := s.matchRepo.DeleteByTournament(ctx, tournamentID); err != nil {
		return storageError("delete tournament matches", err)
	}

	return nil
}
