package httpapi

import (
	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/swiss"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	"github.com/riskibarqy/swiss-tournament/internal/usecase"
)

type registerPlayerRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
}

type createTournamentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type registerEntrantRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

// reportMatchRequest records a bye when LoserID is absent.
type reportMatchRequest struct {
	WinnerID int64  `json:"winner_id" validate:"required,gt=0"`
	LoserID  *int64 `json:"loser_id,omitempty" validate:"omitempty,gt=0"`
}

type playerDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type tournamentDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type entrantCountDTO struct {
	TournamentID int64 `json:"tournament_id"`
	Count        int   `json:"count"`
}

type matchDTO struct {
	ID           int64  `json:"id"`
	TournamentID int64  `json:"tournament_id"`
	WinnerID     int64  `json:"winner_id"`
	LoserID      *int64 `json:"loser_id"`
	Bye          bool   `json:"bye"`
}

type standingDTO struct {
	PlayerID      int64  `json:"player_id"`
	Name          string `json:"name"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	MatchesPlayed int    `json:"matches_played"`
}

type tournamentStandingsDTO struct {
	TournamentID int64         `json:"tournament_id"`
	Standings    []standingDTO `json:"standings"`
}

type seatDTO struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
}

type pairingDTO struct {
	Player   seatDTO  `json:"player"`
	Opponent *seatDTO `json:"opponent"`
	Bye      bool     `json:"bye"`
}

func playerDTOFrom(p player.Player) playerDTO {
	return playerDTO{ID: p.ID, FullName: p.FullName}
}

func tournamentDTOFrom(t tournament.Tournament) tournamentDTO {
	return tournamentDTO{ID: t.ID, Name: t.Name}
}

func matchDTOFrom(m match.Match) matchDTO {
	out := matchDTO{ID: m.ID, TournamentID: m.TournamentID}
	switch r := m.Result.(type) {
	case match.Decisive:
		loser := r.Loser
		out.WinnerID = r.Winner
		out.LoserID = &loser
	case match.Bye:
		out.WinnerID = r.Winner
		out.Bye = true
	}
	return out
}

func standingDTOs(rows []swiss.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{
			PlayerID:      row.PlayerID,
			Name:          row.Name,
			Wins:          row.Wins,
			Losses:        row.Losses,
			MatchesPlayed: row.MatchesPlayed,
		})
	}
	return out
}

func tournamentStandingsDTOs(batches []usecase.TournamentStandings) []tournamentStandingsDTO {
	out := make([]tournamentStandingsDTO, 0, len(batches))
	for _, batch := range batches {
		out = append(out, tournamentStandingsDTO{
			TournamentID: batch.TournamentID,
			Standings:    standingDTOs(batch.Rows),
		})
	}
	return out
}

func pairingDTOs(pairings []swiss.Pairing) []pairingDTO {
	out := make([]pairingDTO, 0, len(pairings))
	for _, p := range pairings {
		item := pairingDTO{
			Player: seatDTO{PlayerID: p.Player.PlayerID, Name: p.Player.Name},
			Bye:    p.IsBye(),
		}
		if p.Opponent != nil {
			item.Opponent = &seatDTO{PlayerID: p.Opponent.PlayerID, Name: p.Opponent.Name}
		}
		out = append(out, item)
	}
	return out
}
