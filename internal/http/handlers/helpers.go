package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Orchestrator is the part of the orchestrator the handlers drive.
type Orchestrator interface {
	Snapshot() orchestrator.State
	Teams() []backend.Team
	LoadTeams(ctx context.Context) ([]backend.Team, error)
	Select(home, away string)
	DismissError()
	WaitFor(ctx context.Context, done func(orchestrator.State) bool) (orchestrator.State, error)
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON is a helper to write a value as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
