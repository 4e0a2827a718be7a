package guarded

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	matchmock "github.com/riskibarqy/swiss-tournament/internal/mocks/domain/match"
	tournamentmock "github.com/riskibarqy/swiss-tournament/internal/mocks/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/resilience"
)

func testBreaker() *resilience.CircuitBreaker {
	return NewBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil)
}

func TestMatchRepository_OpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := matchmock.NewRepository(t)
	repo := NewMatchRepository(next, testBreaker())

	cause := errors.New("connection refused")
	next.On("ListResults", mock.Anything, int64(1)).Return(nil, cause).Twice()

	for i := 0; i < 2; i++ {
		if _, err := repo.ListResults(ctx, 1); !errors.Is(err, cause) {
			t.Fatalf("attempt %d: expected storage cause, got %v", i, err)
		}
	}

	_, err := repo.ListResults(ctx, 1)
	if !errors.Is(err, ErrStorageCircuitOpen) {
		t.Fatalf("expected ErrStorageCircuitOpen, got %v", err)
	}
}

func TestTournamentRepository_DuplicateRegistrationDoesNotTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, testBreaker())

	next.On("RegisterPlayer", mock.Anything, int64(1), int64(2)).Return(tournament.ErrAlreadyRegistered).Times(3)
	next.On("GetByID", mock.Anything, int64(1)).Return(tournament.Tournament{ID: 1}, true, nil).Once()

	for i := 0; i < 3; i++ {
		if err := repo.RegisterPlayer(ctx, 1, 2); !errors.Is(err, tournament.ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	}

	item, exists, err := repo.GetByID(ctx, 1)
	if err != nil || !exists || item.ID != 1 {
		t.Fatalf("expected breaker to stay closed, got %+v %v %v", item, exists, err)
	}
}

func TestMatchRepository_SharedBreakerAcrossRepositories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	breaker := testBreaker()
	matches := matchmock.NewRepository(t)
	tournaments := tournamentmock.NewRepository(t)
	matchRepo := NewMatchRepository(matches, breaker)
	tournamentRepo := NewTournamentRepository(tournaments, breaker)

	matches.On("Record", mock.Anything, int64(1), match.Bye{Winner: 3}).Return(match.Match{}, errors.New("timeout")).Twice()

	for i := 0; i < 2; i++ {
		_, _ = matchRepo.Record(ctx, 1, match.Bye{Winner: 3})
	}

	if _, err := tournamentRepo.CountPlayers(ctx, 1); !errors.Is(err, ErrStorageCircuitOpen) {
		t.Fatalf("expected shared breaker to reject, got %v", err)
	}
}
