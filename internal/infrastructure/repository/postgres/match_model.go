package postgres

import (
	"database/sql"

	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
)

// matchTableModel mirrors the matches table; a null loser_id marks a bye.
type matchTableModel struct {
	ID       int64         `db:"id"`
	WinnerID int64         `db:"winner_id"`
	LoserID  sql.NullInt64 `db:"loser_id"`
}

func (m matchTableModel) result() match.Result {
	if !m.LoserID.Valid {
		return match.Bye{Winner: m.WinnerID}
	}
	return match.Decisive{Winner: m.WinnerID, Loser: m.LoserID.Int64}
}

type matchInsertModel struct {
	WinnerID int64         `db:"winner_id"`
	LoserID  sql.NullInt64 `db:"loser_id"`
}

func matchInsertModelFromResult(result match.Result) matchInsertModel {
	out := matchInsertModel{WinnerID: result.WinnerID()}
	if decisive, ok := result.(match.Decisive); ok {
		out.LoserID = sql.NullInt64{Int64: decisive.Loser, Valid: true}
	}
	return out
}

type tournamentMatchInsertModel struct {
	TournamentID int64 `db:"tournament_id"`
	MatchID      int64 `db:"match_id"`
}

type playedPairRow struct {
	Low  int64 `db:"low"`
	High int64 `db:"high"`
}
