package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/swiss-tournament/internal/domain/swiss"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrUnknownTournament  = fmt.Errorf("%w: unknown tournament", ErrNotFound)
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrUnresolvablePairing = swiss.ErrUnresolvablePairing
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
