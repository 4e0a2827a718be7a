package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	qb "github.com/riskibarqy/swiss-tournament/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, name string) (tournament.Tournament, error) {
	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{Name: name}, "RETURNING id")
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	return tournament.Tournament{ID: id, Name: name}, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("id", "name", "created_at").From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	return tournament.Tournament{ID: row.ID, Name: row.Name}, true, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	query, args, err := qb.DeleteFrom("tournaments").Where(qb.Eq("id", tournamentID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	return nil
}

func (r *TournamentRepository) RegisterPlayer(ctx context.Context, tournamentID, playerID int64) error {
	query, args, err := qb.InsertModel("tournament_players", tournamentPlayerInsertModel{
		TournamentID: tournamentID,
		PlayerID:     playerID,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert tournament player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return tournament.ErrAlreadyRegistered
		case isForeignKeyViolation(err):
			return fmt.Errorf("insert tournament player: tournament=%d player=%d does not exist: %w", tournamentID, playerID, err)
		}
		return fmt.Errorf("insert tournament player: %w", err)
	}

	return nil
}

func (r *TournamentRepository) IsRegistered(ctx context.Context, tournamentID, playerID int64) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("tournament_players").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("player_id", playerID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build check tournament player query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check tournament player: %w", err)
	}
	return count > 0, nil
}

func (r *TournamentRepository) ListPlayers(ctx context.Context, tournamentID int64) ([]player.Player, error) {
	query, args, err := qb.Select("p.id", "p.full_name", "p.created_at").
		From("players p").
		Join("tournament_players tp", "tp.player_id = p.id").
		Where(qb.Eq("tp.tournament_id", tournamentID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournament players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournament players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.ID, FullName: row.FullName})
	}
	return out, nil
}

func (r *TournamentRepository) CountPlayers(ctx context.Context, tournamentID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("tournament_players").
		Where(qb.Eq("tournament_id", tournamentID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count tournament players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count tournament players: %w", err)
	}
	return count, nil
}

func (r *TournamentRepository) UnregisterAll(ctx context.Context, tournamentID int64) error {
	query, args, err := qb.DeleteFrom("tournament_players").Where(qb.Eq("tournament_id", tournamentID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournament players: %w", err)
	}
	return nil
}
