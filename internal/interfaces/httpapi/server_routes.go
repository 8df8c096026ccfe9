package httpapi

import "net/http"

const apiPrefix = "/api/v1"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET "+apiPrefix+"/players", handler.ListPlayers)
	mux.HandleFunc("GET "+apiPrefix+"/players/{playerID}", handler.GetPlayerDetail)
	mux.HandleFunc("GET "+apiPrefix+"/players/{playerID}/highlights", handler.ListPlayerHighlights)
	mux.HandleFunc("GET "+apiPrefix+"/players/{playerID}/stats", handler.GetPlayerSeasonStats)
	mux.HandleFunc("GET "+apiPrefix+"/players/{playerID}/game_log", handler.GetPlayerGameLog)

	mux.HandleFunc("GET "+apiPrefix+"/games", handler.ListGames)
	mux.HandleFunc("GET "+apiPrefix+"/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET "+apiPrefix+"/games/{gameID}/stats", handler.GetGameBoxScore)

	mux.HandleFunc("GET "+apiPrefix+"/stats", handler.ListStats)
	mux.HandleFunc("GET "+apiPrefix+"/stats/{statID}", handler.GetStat)

	mux.HandleFunc("GET "+apiPrefix+"/highlights", handler.ListHighlights)
	mux.HandleFunc("GET "+apiPrefix+"/highlights/{highlightID}", handler.GetHighlight)

	mux.HandleFunc("GET "+apiPrefix+"/roster/stats", handler.GetRosterStats)
	mux.HandleFunc("GET "+apiPrefix+"/season/stats", handler.GetSeasonStats)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdminToken(adminToken, fn))
	}

	admin("GET "+apiPrefix+"/admin/players", handler.ListAllPlayers)
	admin("POST "+apiPrefix+"/players", handler.CreatePlayer)
	admin("PUT "+apiPrefix+"/players/{playerID}", handler.UpdatePlayer)
	admin("DELETE "+apiPrefix+"/players/{playerID}", handler.DeactivatePlayer)
	admin("PUT "+apiPrefix+"/players/{playerID}/reactivate", handler.ReactivatePlayer)

	admin("POST "+apiPrefix+"/games", handler.CreateGame)
	admin("PUT "+apiPrefix+"/games/{gameID}", handler.UpdateGame)
	admin("DELETE "+apiPrefix+"/games/{gameID}", handler.DeleteGame)
	admin("POST "+apiPrefix+"/games/{gameID}/stats/batch", handler.BatchCreateGameStats)

	admin("POST "+apiPrefix+"/stats", handler.CreateStat)
	admin("PUT "+apiPrefix+"/stats/{statID}", handler.UpdateStat)
	admin("DELETE "+apiPrefix+"/stats/{statID}", handler.DeleteStat)

	admin("POST "+apiPrefix+"/highlights", handler.CreateHighlight)
	admin("PUT "+apiPrefix+"/highlights/{highlightID}", handler.UpdateHighlight)
	admin("DELETE "+apiPrefix+"/highlights/{highlightID}", handler.DeleteHighlight)
}
