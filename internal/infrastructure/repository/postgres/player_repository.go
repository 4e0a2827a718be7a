package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	qb "github.com/riskibarqy/swiss-tournament/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"full_name",
	"created_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, fullName string) (player.Player, error) {
	query, args, err := qb.InsertModel("players", playerInsertModel{FullName: fullName}, "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return player.Player{ID: id, FullName: fullName}, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return player.Player{ID: row.ID, FullName: row.FullName}, true, nil
}

// DeleteAll relies on ON DELETE CASCADE to drop registrations and matches.
func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("players").ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}
	return nil
}
