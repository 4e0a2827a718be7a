package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	qb "github.com/riskibarqy/swiss-tournament/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Record inserts the match and its tournament link in one transaction.
func (r *MatchRepository) Record(ctx context.Context, tournamentID int64, result match.Result) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx record match: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	matchQuery, matchArgs, err := qb.InsertModel("matches", matchInsertModelFromResult(result), "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}
	var matchID int64
	if err := tx.QueryRowxContext(ctx, matchQuery, matchArgs...).Scan(&matchID); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	linkQuery, linkArgs, err := qb.InsertModel("tournament_matches", tournamentMatchInsertModel{
		TournamentID: tournamentID,
		MatchID:      matchID,
	}, "")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert tournament match query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, linkQuery, linkArgs...); err != nil {
		return match.Match{}, fmt.Errorf("insert tournament match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit record match tx: %w", err)
	}

	return match.Match{ID: matchID, TournamentID: tournamentID, Result: result}, nil
}

func (r *MatchRepository) ListResults(ctx context.Context, tournamentID int64) ([]match.Result, error) {
	query, args, err := tournamentMatchesSelect("m.id", "m.winner_id", "m.loser_id").
		Where(qb.Eq("tm.tournament_id", tournamentID)).
		OrderBy("m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.result())
	}
	return out, nil
}

func (r *MatchRepository) ListPlayedPairs(ctx context.Context, tournamentID int64) ([]match.PairKey, error) {
	query, args, err := tournamentMatchesSelect(
		"LEAST(m.winner_id, m.loser_id) AS low",
		"GREATEST(m.winner_id, m.loser_id) AS high",
	).
		Distinct().
		Where(
			qb.Eq("tm.tournament_id", tournamentID),
			qb.IsNotNull("m.loser_id"),
		).
		OrderBy("low", "high").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select played pairs query: %w", err)
	}

	var rows []playedPairRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select played pairs: %w", err)
	}

	out := make([]match.PairKey, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.NewPairKey(row.Low, row.High))
	}
	return out, nil
}

func (r *MatchRepository) ListByeRecipients(ctx context.Context, tournamentID int64) ([]int64, error) {
	query, args, err := tournamentMatchesSelect("m.winner_id").
		Distinct().
		Where(
			qb.Eq("tm.tournament_id", tournamentID),
			qb.IsNull("m.loser_id"),
		).
		OrderBy("m.winner_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select bye recipients query: %w", err)
	}

	out := []int64{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select bye recipients: %w", err)
	}
	return out, nil
}

// DeleteByTournament removes the matches themselves; the link rows follow by cascade.
func (r *MatchRepository) DeleteByTournament(ctx context.Context, tournamentID int64) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Expr("id IN (SELECT match_id FROM tournament_matches WHERE tournament_id = ?)", tournamentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournament matches: %w", err)
	}
	return nil
}

func tournamentMatchesSelect(columns ...string) *qb.SelectBuilder {
	return qb.Select(columns...).
		From("matches m").
		Join("tournament_matches tm", "tm.match_id = m.id")
}
