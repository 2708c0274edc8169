package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// StateHandler returns the current orchestration state.
func StateHandler(o Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, o.Snapshot())
	}
}

// ListTeamsHandler returns the team list, loading it on first use.
func ListTeamsHandler(o Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := o.LoadTeams(r.Context())
		if err != nil {
			log.Error("Failed to load teams", "error", err)
			status := http.StatusBadGateway
			if errors.Is(err, backend.ErrServiceUnavailable) {
				status = http.StatusServiceUnavailable
			}
			respondError(w, status, "Failed to load teams")
			return
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

// SelectHandler stores the selection from the home and away query
// parameters; either may be empty to clear a slot. With wait=true the
// response is held until the attempt settles, fails or the selection
// becomes ineligible.
func SelectHandler(o Orchestrator, m metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		home := strings.TrimSpace(query.Get("home"))
		away := strings.TrimSpace(query.Get("away"))
		log.Info("Selection received", "home", home, "away", away)
		m.IncSelectionsReceived()
		o.Select(home, away)

		if query.Get("wait") != "true" {
			respondJSON(w, http.StatusAccepted, o.Snapshot())
			return
		}

		state, err := o.WaitFor(r.Context(), func(s orchestrator.State) bool {
			if s.Selection.Home != home || s.Selection.Away != away {
				// Another client changed the selection.
				return true
			}
			switch s.Phase {
			case orchestrator.PhaseSettled, orchestrator.PhaseFailed, orchestrator.PhaseIdle:
				return true
			}
			return false
		})
		if err != nil {
			log.Warn("Stopped waiting for selection", "home", home, "away", away, "error", err)
			respondJSON(w, http.StatusAccepted, state)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// DismissErrorHandler clears a surfaced error.
func DismissErrorHandler(o Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o.DismissError()
		respondJSON(w, http.StatusOK, o.Snapshot())
	}
}
