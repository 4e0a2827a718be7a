package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/grafana/pyroscope-go"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/swiss"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
)

type PairingService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	logger         *logging.Logger
}

func NewPairingService(tournamentRepo tournament.Repository, matchRepo match.Repository, logger *logging.Logger) *PairingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PairingService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

// NextRound proposes the pairings of the next round. Nothing is persisted;
// the caller reports each pairing once it has been played.
func (s *PairingService) NextRound(ctx context.Context, tournamentID int64) ([]swiss.Pairing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PairingService.NextRound", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := requireTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	var (
		players []player.Player
		results []match.Result
		played  []match.PairKey
		byes    []int64
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		if players, err = s.tournamentRepo.ListPlayers(ctx, tournamentID); err != nil {
			return storageError("list tournament players", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if results, err = s.matchRepo.ListResults(ctx, tournamentID); err != nil {
			return storageError("list match results", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if played, err = s.matchRepo.ListPlayedPairs(ctx, tournamentID); err != nil {
			return storageError("list played pairs", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		if byes, err = s.matchRepo.ListByeRecipients(ctx, tournamentID); err != nil {
			return storageError("list bye recipients", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var pairings []swiss.Pairing
	var err error
	// Profile samples taken while pairing carry the tournament id.
	pyroscope.TagWrapper(ctx, pyroscope.Labels("operation", "swiss_pair", "tournament_id", strconv.FormatInt(tournamentID, 10)), func(context.Context) {
		standings := swiss.ComputeStandings(entrantsOf(players), results)
		pairings, err = swiss.Pair(standings, swiss.NewHistory(played, byes))
	})
	if err != nil {
		var unresolved *swiss.UnresolvablePairingError
		if errors.As(err, &unresolved) {
			s.logger.WarnContext(ctx, "next round cannot be paired",
				"tournament_id", tournamentID,
				"unplaced", unresolved.Unplaced,
				"partial_pairs", len(unresolved.Partial),
			)
		}
		return nil, err
	}

	return pairings, nil
}
