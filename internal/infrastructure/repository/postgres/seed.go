package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo tournament into an empty database. Sequences are
// moved past the seeded ids so later inserts do not collide.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments`); err != nil {
		return fmt.Errorf("count tournaments for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, p := range memory.SeedPlayers() {
		if err := exec(fmt.Sprintf("player %d", p.ID), `
INSERT INTO players (id, full_name)
VALUES (:id, :full_name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        p.ID,
			"full_name": p.FullName,
		}); err != nil {
			return err
		}
	}

	for _, t := range memory.SeedTournaments() {
		if err := exec(fmt.Sprintf("tournament %d", t.ID), `
INSERT INTO tournaments (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":   t.ID,
			"name": t.Name,
		}); err != nil {
			return err
		}
		for _, p := range memory.SeedPlayers() {
			if err := exec(fmt.Sprintf("tournament player %d/%d", t.ID, p.ID), `
INSERT INTO tournament_players (tournament_id, player_id)
VALUES (:tournament_id, :player_id)
ON CONFLICT DO NOTHING`, map[string]any{
				"tournament_id": t.ID,
				"player_id":     p.ID,
			}); err != nil {
				return err
			}
		}
	}

	for _, m := range memory.SeedMatches() {
		loser := sql.NullInt64{}
		if decisive, ok := m.Result.(match.Decisive); ok {
			loser = sql.NullInt64{Int64: decisive.Loser, Valid: true}
		}
		if err := exec(fmt.Sprintf("match %d", m.ID), `
INSERT INTO matches (id, winner_id, loser_id)
VALUES (:id, :winner_id, :loser_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        m.ID,
			"winner_id": m.Result.WinnerID(),
			"loser_id":  loser,
		}); err != nil {
			return err
		}
		if err := exec(fmt.Sprintf("tournament match %d", m.ID), `
INSERT INTO tournament_matches (tournament_id, match_id)
VALUES (:tournament_id, :match_id)
ON CONFLICT DO NOTHING`, map[string]any{
			"tournament_id": m.TournamentID,
			"match_id":      m.ID,
		}); err != nil {
			return err
		}
	}

	for _, table := range []string{"players", "tournaments", "matches"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("advance %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
