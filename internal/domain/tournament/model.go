package tournament

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyRegistered is returned when a player is linked to the same tournament twice.
var ErrAlreadyRegistered = errors.New("player already registered in tournament")

// Tournament groups registered players and the matches played between them.
type Tournament struct {
	ID   int64
	Name string
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}

	return nil
}
