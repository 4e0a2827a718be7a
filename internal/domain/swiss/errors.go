package swiss

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnresolvablePairing reports a round that leaves players with neither a legal
// opponent nor a bye.
var ErrUnresolvablePairing = crerr.New("unresolvable pairing")

// UnresolvablePairingError lists the stranded players and the pairs that were formed.
type UnresolvablePairingError struct {
	Unplaced []int64
	Partial  []Pairing
}

func (e *UnresolvablePairingError) Error() string {
	if len(e.Unplaced) == 1 {
		return fmt.Sprintf("%s: player %d has no legal opponent and already received a bye", ErrUnresolvablePairing, e.Unplaced[0])
	}
	return fmt.Sprintf("%s: players %v have no legal opponent", ErrUnresolvablePairing, e.Unplaced)
}

func (e *UnresolvablePairingError) Is(target error) bool {
	return target == ErrUnresolvablePairing
}
