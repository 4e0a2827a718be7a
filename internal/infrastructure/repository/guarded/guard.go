// Package guarded puts a circuit breaker in front of the storage repositories.
// While the circuit is open every call fails fast with ErrStorageCircuitOpen.
package guarded

import (
	"context"
	"errors"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
	"github.com/riskibarqy/swiss-tournament/internal/platform/resilience"
)

var ErrStorageCircuitOpen = crerr.New("storage circuit open")

type guard struct {
	breaker *resilience.CircuitBreaker
}

// NewBreaker builds the breaker shared by all guarded repositories and logs its transitions.
func NewBreaker(cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *resilience.CircuitBreaker {
	if logger == nil {
		logger = logging.Default()
	}
	breaker := resilience.NewCircuitBreakerFromConfig(cfg)
	breaker.OnStateChange(func(change resilience.StateChange) {
		logger.Warn("storage circuit breaker state changed",
			"from", string(change.From),
			"to", string(change.To),
		)
	})
	return breaker
}

func (g guard) do(op string, fn func() error) error {
	err := g.breaker.Do(fn, countsAsFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return crerr.Wrapf(ErrStorageCircuitOpen, "%s", op)
	}
	return err
}

func countsAsFailure(err error) bool {
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, tournament.ErrAlreadyRegistered):
		return false
	}
	return true
}

func call[T any](g guard, op string, fn func() (T, error)) (T, error) {
	var out T
	err := g.do(op, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}
