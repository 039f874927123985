package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{year}/weeks/{week}/matchups", handler.ListMatchups)
	mux.HandleFunc("GET /v1/seasons/{year}/weeks/{week}/results", handler.ListWeekResults)
	mux.HandleFunc("GET /v1/seasons/{year}/weeks/{week}/results/history", handler.ListSeasonResults)
	mux.HandleFunc("GET /v1/seasons/{year}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/seasons/{year}/standings/history", handler.ListStandingsHistory)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/seasons/{year}/weeks/{week}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitWeekPicks)))
	mux.Handle("GET /v1/seasons/{year}/weeks/{week}/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetWeekPicks)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunUploadTeamsJob)))
	mux.Handle("POST /v1/internal/jobs/schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunUploadScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecordResultJob)))
	mux.Handle("POST /v1/internal/jobs/odds-refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshOddsJob)))
}
