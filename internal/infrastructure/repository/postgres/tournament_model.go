package postgres

import "time"

type tournamentTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type tournamentInsertModel struct {
	Name string `db:"name"`
}

type tournamentPlayerInsertModel struct {
	TournamentID int64 `db:"tournament_id"`
	PlayerID     int64 `db:"player_id"`
}
