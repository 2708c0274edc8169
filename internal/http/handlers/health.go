package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
)

// HealthResponse reports the daemon and, when checked, the backend.
type HealthResponse struct {
	Status  string          `json:"status"`
	Backend *backend.Health `json:"backend,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HealthChecker is satisfied by backend.BackendClient.
type HealthChecker interface {
	Health(ctx context.Context) (backend.Health, error)
}

// HealthCheckHandler answers liveness probes. With backend=true it also
// checks the prediction service and reports 503 when it is down.
func HealthCheckHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if r.URL.Query().Get("backend") != "true" {
			respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		health, err := checker.Health(ctx)
		if err != nil {
			log.Warn("Backend health check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Error: err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: &health})
	}
}
