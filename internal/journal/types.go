package journal

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// ErrNotFound is returned by Get for an unknown attempt.
var ErrNotFound = errors.New("attempt not found")

// DefaultLimit is used by Recent when limit is not positive.
const DefaultLimit = 20

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one journaled attempt.
type Entry struct {
	AttemptID  string                   `json:"attempt_id"`
	HomeTeam   string                   `json:"home_team"`
	AwayTeam   string                   `json:"away_team"`
	Phase      orchestrator.Phase       `json:"phase"`
	Result     *backend.MatchPrediction `json:"result,omitempty"`
	HomeStats  *backend.TeamStats       `json:"home_stats,omitempty"`
	AwayStats  *backend.TeamStats       `json:"away_stats,omitempty"`
	Err        string                   `json:"error,omitempty"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
}

// Duration is how long the attempt took from start to its terminal phase.
func (e Entry) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}
