package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/schedule"
	"github.com/mauv0809/pitchside/internal/selection"
)

// Phase is the orchestration lifecycle position the rendering layer paints from.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhasePending   Phase = "PENDING"
	PhaseInFlight  Phase = "IN_FLIGHT"
	PhaseRevealing Phase = "REVEALING"
	PhaseSettled   Phase = "SETTLED"
	PhaseFailed    Phase = "FAILED"
)

const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultRevealDelay = 300 * time.Millisecond
	sinkTimeout        = 10 * time.Second
)

// State is everything a rendering layer needs. Pointer fields are nil when the
// data is absent and are never mutated after publication.
type State struct {
	Phase       Phase                    `json:"phase"`
	Selection   selection.Selection      `json:"selection"`
	HomeTeam    *backend.Team            `json:"home_team,omitempty"`
	AwayTeam    *backend.Team            `json:"away_team,omitempty"`
	Result      *backend.MatchPrediction `json:"result"`
	HomeStats   *backend.TeamStats       `json:"home_stats"`
	AwayStats   *backend.TeamStats       `json:"away_stats"`
	RevealScore bool                     `json:"reveal_score"`
	// StatsPending counts the displayed attempt's stats calls that have not returned.
	StatsPending int    `json:"stats_pending"`
	Err          string `json:"error,omitempty"`
	AttemptID    string `json:"attempt_id,omitempty"`
	Version      uint64 `json:"version"`
}

// Outcome is the record of a finished attempt handed to sinks.
type Outcome struct {
	AttemptID  string                   `json:"attempt_id" msgpack:"attempt_id"`
	Selection  selection.Selection      `json:"selection" msgpack:"selection"`
	Phase      Phase                    `json:"phase" msgpack:"phase"`
	Result     *backend.MatchPrediction `json:"result,omitempty" msgpack:"result,omitempty"`
	HomeStats  *backend.TeamStats       `json:"home_stats,omitempty" msgpack:"home_stats,omitempty"`
	AwayStats  *backend.TeamStats       `json:"away_stats,omitempty" msgpack:"away_stats,omitempty"`
	Err        string                   `json:"error,omitempty" msgpack:"error,omitempty"`
	StartedAt  time.Time                `json:"started_at" msgpack:"started_at"`
	FinishedAt time.Time                `json:"finished_at" msgpack:"finished_at"`
}

// Options configures an Orchestrator. Zero values select the defaults.
type Options struct {
	Scheduler      schedule.Scheduler
	Debounce       time.Duration
	RevealDelay    time.Duration
	RequestTimeout time.Duration
	Metrics        metrics.Metrics
	Sinks          []Sink
}

// attempt is one pass through the fetch sequence for a fixed selection.
type attempt struct {
	id        string
	sel       selection.Selection
	startedAt time.Time
	// home and away are the names sent to the backend: the team list's
	// canonical names when it is loaded, the raw selection otherwise.
	home, away string
	// predicted is set once the prediction call has returned, successfully or not.
	predicted bool
}

// Orchestrator drives the fetch gateway from selection changes. All state is
// owned by mu; timers and network completions re-enter through it.
type Orchestrator struct {
	client      backend.BackendClient
	selections  *selection.Store
	scheduler   schedule.Scheduler
	debounce    time.Duration
	revealDelay time.Duration
	timeout     time.Duration
	metrics     metrics.Metrics
	sinks       []Sink

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	teamsMu sync.Mutex
	teams   []backend.Team

	mu    sync.Mutex
	state State
	// pendingFor is the selection the debounce timer is armed for.
	pendingFor     *selection.Selection
	debounceSeq    uint64
	cancelDebounce schedule.Cancel
	cancelReveal   schedule.Cancel
	// inFlight is the re-entrancy guard: non-nil while an attempt owns the fetch sequence.
	inFlight *attempt
	// display is the attempt whose data the state currently shows.
	display *attempt
	subs    map[chan State]struct{}
	closed  bool
}
