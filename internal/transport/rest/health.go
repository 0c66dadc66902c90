package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/summarizer-backend/internal/service/diagnostics"
)

// diagnosticsRunner probes every dependency.
type diagnosticsRunner interface {
	Run(ctx context.Context) diagnostics.Report
}

// HealthHandler serves the banner and the composite health endpoint.
type HealthHandler struct {
	diag    diagnosticsRunner
	version string
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. timeout bounds a whole /health run.
func NewHealthHandler(diag diagnosticsRunner, version string, timeout time.Duration) *HealthHandler {
	return &HealthHandler{diag: diag, version: version, timeout: timeout}
}

type bannerResponse struct {
	Message          string `json:"message"`
	Version          string `json:"version"`
	Health           string `json:"health"`
	UseCasesEndpoint string `json:"usecases_endpoint"`
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status    string                               `json:"status"`
	Version   string                               `json:"version,omitempty"`
	Services  map[string]diagnostics.ServiceStatus `json:"services"`
	Timestamp time.Time                            `json:"timestamp"`
}

// Root handles GET /. It never touches dependencies.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{
		Message:          "AI Summarizer API is running",
		Version:          h.version,
		Health:           "/health",
		UseCasesEndpoint: "/usecases",
	})
}

// Health handles GET /health: 200 when every probe passed, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rep := h.diag.Run(ctx)

	status := http.StatusOK
	if !rep.Healthy() {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:    rep.Status,
		Version:   h.version,
		Services:  rep.Services,
		Timestamp: rep.Timestamp,
	})
}
