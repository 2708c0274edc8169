package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/journal"
)

// HistoryHandler lists journaled attempts, newest first. The limit query
// parameter caps the result.
func HistoryHandler(j journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := journal.DefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				log.Warn("Invalid 'limit' parameter provided", "limit_param", raw)
				respondError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		entries, err := j.Recent(r.Context(), limit)
		if err != nil {
			log.Error("Failed to read journal", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to read history")
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// AttemptHandler returns a single journaled attempt by the id path value.
func AttemptHandler(j journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		entry, err := j.Get(r.Context(), id)
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "attempt not found")
			return
		}
		if err != nil {
			log.Error("Failed to read attempt", "attemptID", id, "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to read attempt")
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}
