package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	FullName  string    `db:"full_name"`
	CreatedAt time.Time `db:"created_at"`
}

type playerInsertModel struct {
	FullName string `db:"full_name"`
}
