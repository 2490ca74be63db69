package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
}

func registerEventRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports", handler.ListSports)
	mux.HandleFunc("GET /v1/sports/{sport}/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/sports/{sport}/events/{eventID}", handler.GetEventDetail)
	mux.HandleFunc("GET /v1/sports/{sport}/event-details", handler.GetEventDetails)
}
