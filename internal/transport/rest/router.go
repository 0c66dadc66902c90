package rest

import (
	"net/http"

	"github.com/heartmarshall/summarizer-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	UseCases *UseCaseHandler
	Analysis *AnalysisHandler
}

// NewRouter mounts public routes directly and wraps protected ones with auth.
func NewRouter(h Handlers, auth middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Health.Root)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /usecases", h.UseCases.List)

	mux.Handle("GET /me", auth(http.HandlerFunc(h.Analysis.Me)))
	mux.Handle("POST /analyze", auth(http.HandlerFunc(h.Analysis.Analyze)))
	mux.Handle("GET /history", auth(http.HandlerFunc(h.Analysis.ListHistory)))
	mux.Handle("DELETE /history/{id}", auth(http.HandlerFunc(h.Analysis.DeleteHistory)))

	return mux
}
