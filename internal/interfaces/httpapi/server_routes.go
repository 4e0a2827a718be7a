package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.RegisterPlayer)
	mux.HandleFunc("DELETE /v1/players", handler.DeletePlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}", handler.DeleteTournament)

	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/players", handler.RegisterEntrant)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/players/count", handler.CountEntrants)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}/players", handler.UnregisterEntrants)

	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/matches", handler.ReportMatch)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}/matches", handler.DeleteMatches)
}

func registerStandingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandingsBatch)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/pairings", handler.NextRoundPairings)
}
