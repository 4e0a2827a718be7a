package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, fullName string) (Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	DeleteAll(ctx context.Context) error
}
