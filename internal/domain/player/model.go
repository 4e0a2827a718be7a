package player

import (
	"fmt"
	"strings"
)

// Player is a person who can be registered in any number of tournaments.
type Player struct {
	ID       int64
	FullName string
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}
