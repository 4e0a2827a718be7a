package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/swiss"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
)

const (
	defaultStandingBatchWorkers = 4
	maxStandingBatchSize        = 50
)

type TournamentStandings struct {
	TournamentID int64
	Rows         []swiss.Standing
}

type StandingService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	batchWorkers   int
	logger         *logging.Logger
}

func NewStandingService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	batchWorkers int,
	logger *logging.Logger,
) *StandingService {
	if batchWorkers <= 0 {
		batchWorkers = defaultStandingBatchWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		batchWorkers:   batchWorkers,
		logger:         logger,
	}
}

// ListByTournament returns one row per registered player ordered by wins.
func (s *StandingService) ListByTournament(ctx context.Context, tournamentID int64) ([]swiss.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByTournament", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	return s.compute(ctx, tournamentID)
}

func (s *StandingService) compute(ctx context.Context, tournamentID int64) ([]swiss.Standing, error) {
	players, err := s.tournamentRepo.ListPlayers(ctx, tournamentID)
	if err != nil {
		return nil, storageError("list tournament players", err)
	}
	results, err := s.matchRepo.ListResults(ctx, tournamentID)
	if err != nil {
		return nil, storageError("list match results", err)
	}

	return swiss.ComputeStandings(entrantsOf(players), results), nil
}

// ListByTournaments computes standings for several tournaments on a bounded
// worker pool. The output keeps the order of tournamentIDs.
func (s *StandingService) ListByTournaments(ctx context.Context, tournamentIDs []int64) ([]TournamentStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByTournaments",
		attribute.Int("tournament.count", len(tournamentIDs)),
	)
	defer span.End()

	if len(tournamentIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one tournament id is required", ErrInvalidInput)
	}
	if len(tournamentIDs) > maxStandingBatchSize {
		return nil, fmt.Errorf("%w: at most %d tournaments per request", ErrInvalidInput, maxStandingBatchSize)
	}
	for _, id := range tournamentIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: tournament id must be > 0", ErrInvalidInput)
		}
	}

	workerCount := min(s.batchWorkers, len(tournamentIDs))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]TournamentStandings, len(tournamentIDs))
	errs := make([]error, len(tournamentIDs))

	var workers sync.WaitGroup
	for idx, tournamentID := range tournamentIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
				errs[idx] = err
				return
			}
			rows, err := s.compute(ctx, tournamentID)
			if err != nil {
				errs[idx] = err
				return
			}
			out[idx] = TournamentStandings{TournamentID: tournamentID, Rows: rows}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	for idx, err := range errs {
		if err == nil {
			continue
		}
		s.logger.WarnContext(ctx, "batch standings failed",
			"tournament_id", tournamentIDs[idx],
			"error", err,
		)
		return nil, err
	}

	return out, nil
}

func entrantsOf(players []player.Player) []swiss.Entrant {
	out := make([]swiss.Entrant, 0, len(players))
	for _, p := range players {
		out = append(out, swiss.Entrant{PlayerID: p.ID, Name: p.FullName})
	}
	return out
}
