package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/schedule"
	"github.com/mauv0809/pitchside/internal/selection"
)

// ErrClosed is returned by operations on a closed Orchestrator.
var ErrClosed = errors.New("orchestrator closed")

const (
	msgInvalidSelection = "Please select two different teams."
	msgUnknownTeam      = "Unknown team selected. Please pick from the team list."
	msgPredictionFailed = "Error making prediction. Please try again."
)

// New creates an Orchestrator observing the given selection store.
func New(client backend.BackendClient, selections *selection.Store, opts Options) *Orchestrator {
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.New()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		client:      client,
		selections:  selections,
		scheduler:   opts.Scheduler,
		debounce:    opts.Debounce,
		revealDelay: opts.RevealDelay,
		timeout:     opts.RequestTimeout,
		metrics:     opts.Metrics,
		sinks:       opts.Sinks,
		ctx:         ctx,
		cancel:      cancel,
		state:       State{Phase: PhaseIdle, Selection: selections.Current()},
		subs:        make(map[chan State]struct{}),
	}
	selections.OnChange(func(selection.Selection) { o.onSelection() })
	return o
}

// LoadTeams fetches the team list once per session. A failed load is not
// remembered, so a later call tries again.
func (o *Orchestrator) LoadTeams(ctx context.Context) ([]backend.Team, error) {
	if teams := o.Teams(); teams != nil {
		return teams, nil
	}

	teams, err := o.client.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	if teams == nil {
		teams = []backend.Team{}
	}

	o.teamsMu.Lock()
	if o.teams == nil {
		o.teams = teams
	}
	teams = append([]backend.Team(nil), o.teams...)
	o.teamsMu.Unlock()

	log.Info("Loaded team list", "count", len(teams))
	return teams, nil
}

// Teams returns the loaded team list, or nil before LoadTeams succeeded.
func (o *Orchestrator) Teams() []backend.Team {
	o.teamsMu.Lock()
	defer o.teamsMu.Unlock()
	if o.teams == nil {
		return nil
	}
	return append([]backend.Team(nil), o.teams...)
}

// SetHome forwards to the selection store.
func (o *Orchestrator) SetHome(team string) { o.selections.SetHome(team) }

// SetAway forwards to the selection store.
func (o *Orchestrator) SetAway(team string) { o.selections.SetAway(team) }

// Select sets both teams as one mutation.
func (o *Orchestrator) Select(home, away string) { o.selections.Set(home, away) }

// Clear empties the selection.
func (o *Orchestrator) Clear() { o.selections.Clear() }

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// DismissError clears the surfaced error. The phase is left untouched.
func (o *Orchestrator) DismissError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.state.Err == "" {
		return
	}
	o.state.Err = ""
	o.publishLocked()
}

// Subscribe returns a channel receiving every published state, and a function
// to unsubscribe. A slow subscriber only ever misses intermediate states: the
// newest state replaces an unread one.
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		close(ch)
		return ch, func() {}
	}
	o.subs[ch] = struct{}{}
	ch <- o.state
	return ch, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if _, ok := o.subs[ch]; ok {
			delete(o.subs, ch)
			close(ch)
		}
	}
}

// WaitFor blocks until a published state satisfies done, and returns it.
func (o *Orchestrator) WaitFor(ctx context.Context, done func(State) bool) (State, error) {
	ch, unsubscribe := o.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return o.Snapshot(), ctx.Err()
		case s, ok := <-ch:
			if !ok {
				return o.Snapshot(), ErrClosed
			}
			if done(s) {
				return s, nil
			}
		}
	}
}

// Close stops timers, closes subscriptions and waits for outstanding calls
// and sink deliveries to return.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.cancelDebounceLocked()
	o.cancelRevealLocked()
	for ch := range o.subs {
		close(ch)
	}
	o.subs = nil
	o.mu.Unlock()

	o.cancel()
	o.wg.Wait()
	log.Debug("Orchestrator closed")
}

// onSelection runs on every selection mutation. It reads the store rather
// than the notified value so that racing writers converge on the latest one.
func (o *Orchestrator) onSelection() {
	sel := o.selections.Current()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.state.Selection = sel

	if !sel.Eligible() {
		log.Debug("Selection not eligible", "home", sel.Home, "away", sel.Away)
		o.cancelDebounceLocked()
		o.invalidateLocked()
		o.state.Err = ""
		o.state.Phase = PhaseIdle
		o.publishLocked()
		return
	}

	if o.display != nil && o.display.sel == sel {
		// The attempt on screen already serves this selection.
		o.publishLocked()
		return
	}
	if o.pendingFor != nil && *o.pendingFor == sel {
		o.publishLocked()
		return
	}

	o.enterPendingLocked(sel)
	o.publishLocked()
}

// enterPendingLocked (re)starts the trailing debounce for sel and clears
// whatever was on display.
func (o *Orchestrator) enterPendingLocked(sel selection.Selection) {
	if o.cancelDebounceLocked() {
		o.metrics.IncDebounceRestarts()
	}
	o.invalidateLocked()
	o.state.Err = ""
	o.state.Phase = PhasePending

	o.debounceSeq++
	seq := o.debounceSeq
	pending := sel
	o.pendingFor = &pending
	o.cancelDebounce = o.scheduler.After(o.debounce, func() { o.fire(seq) })
	log.Debug("Debounce armed", "home", sel.Home, "away", sel.Away, "quiet", o.debounce)
}

// fire runs when the debounce quiet period elapses.
func (o *Orchestrator) fire(seq uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	// A timer that fired while being canceled carries an old sequence number.
	if o.closed || seq != o.debounceSeq || o.pendingFor == nil {
		return
	}
	sel := *o.pendingFor
	o.pendingFor = nil
	o.cancelDebounce = nil

	if o.inFlight != nil {
		o.metrics.IncTriggersDropped()
		log.Info("Dropping trigger, an attempt is already in flight",
			"home", sel.Home, "away", sel.Away, "inFlightAttemptID", o.inFlight.id)
		return
	}
	o.startLocked(sel)
}

// startLocked moves PENDING to IN_FLIGHT and launches the fetch sequence.
func (o *Orchestrator) startLocked(sel selection.Selection) {
	att := &attempt{id: uuid.NewString(), sel: sel, startedAt: time.Now(), home: sel.Home, away: sel.Away}

	home, away, loaded := o.lookupTeams(sel)
	if err := backend.ValidatePair(sel.Home, sel.Away); err != nil {
		o.rejectLocked(att, msgInvalidSelection, err)
		return
	}
	if loaded && (home == nil || away == nil) {
		o.rejectLocked(att, msgUnknownTeam, fmt.Errorf("team not in team list: %q vs %q", sel.Home, sel.Away))
		return
	}
	if home != nil && away != nil && home.ID == away.ID {
		o.rejectLocked(att, msgInvalidSelection, fmt.Errorf("both names resolve to team %d", home.ID))
		return
	}

	if home != nil && away != nil {
		att.home, att.away = home.Name, away.Name
	}

	o.inFlight = att
	o.display = att
	o.state = State{
		Phase:        PhaseInFlight,
		Selection:    sel,
		HomeTeam:     home,
		AwayTeam:     away,
		StatsPending: 2,
		AttemptID:    att.id,
		Version:      o.state.Version,
	}
	o.metrics.IncAttemptsStarted()
	log.Info("Starting prediction attempt", "attemptID", att.id, "home", sel.Home, "away", sel.Away)
	o.publishLocked()

	o.wg.Add(3)
	go o.fetchStats(att, true)
	go o.fetchStats(att, false)
	go o.fetchPrediction(att)
}

// rejectLocked fails an attempt before any network call.
func (o *Orchestrator) rejectLocked(att *attempt, message string, cause error) {
	log.Warn("Rejecting selection", "attemptID", att.id, "home", att.sel.Home, "away", att.sel.Away, "error", cause)
	o.state = State{
		Phase:     PhaseFailed,
		Selection: att.sel,
		Err:       message,
		AttemptID: att.id,
		Version:   o.state.Version,
	}
	o.metrics.IncPredictionFailures()
	o.publishLocked()
	o.deliverLocked(o.outcomeLocked(att))
}

func (o *Orchestrator) fetchStats(att *attempt, home bool) {
	defer o.wg.Done()
	team, side := att.away, "away"
	if home {
		team, side = att.home, "home"
	}

	ctx, cancel := o.callContext()
	defer cancel()
	stats, err := o.client.GetTeamStats(ctx, team)
	if err != nil {
		o.metrics.IncStatsUnavailable()
		log.Warn("Team stats unavailable", "attemptID", att.id, "side", side, "team", team, "error", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	if !o.relevantLocked(att) {
		log.Debug("Discarding stats for superseded attempt", "attemptID", att.id, "side", side)
		return
	}
	if o.state.StatsPending > 0 {
		o.state.StatsPending--
	}
	if err == nil {
		if home {
			o.state.HomeStats = &stats
		} else {
			o.state.AwayStats = &stats
		}
	}
	o.publishLocked()
}

func (o *Orchestrator) fetchPrediction(att *attempt) {
	defer o.wg.Done()

	ctx, cancel := o.callContext()
	defer cancel()
	start := time.Now()
	prediction, err := o.client.PredictMatch(ctx, att.home, att.away)
	o.metrics.ObservePredictionDuration(time.Since(start).Seconds())

	o.mu.Lock()
	defer o.mu.Unlock()
	att.predicted = true
	if o.closed {
		return
	}

	if !o.relevantLocked(att) {
		o.metrics.IncStaleResults()
		log.Info("Discarding prediction for superseded selection",
			"attemptID", att.id, "home", att.sel.Home, "away", att.sel.Away, "error", err)
		o.releaseLocked(att)
		o.rearmLocked()
		return
	}

	if err != nil {
		o.metrics.IncPredictionFailures()
		log.Error("Prediction failed", "attemptID", att.id, "home", att.sel.Home, "away", att.sel.Away, "error", err)
		o.releaseLocked(att)
		o.display = nil
		message := msgPredictionFailed
		if errors.Is(err, backend.ErrInvalidSelection) {
			message = msgInvalidSelection
		}
		o.state = State{
			Phase:     PhaseFailed,
			Selection: att.sel,
			Err:       message,
			AttemptID: att.id,
			Version:   o.state.Version,
		}
		o.publishLocked()
		outcome := o.outcomeLocked(att)
		outcome.Err = err.Error()
		o.deliverLocked(outcome)
		return
	}

	log.Info("Prediction received", "attemptID", att.id, "result", prediction.PredictedResult, "confidence", prediction.Confidence)
	o.state.Result = &prediction
	o.state.RevealScore = false
	o.state.Phase = PhaseRevealing
	o.publishLocked()
	o.cancelReveal = o.scheduler.After(o.revealDelay, func() { o.reveal(att) })
}

// reveal completes REVEALING -> SETTLED if att is still the one on display.
func (o *Orchestrator) reveal(att *attempt) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.state.Phase != PhaseRevealing || !o.relevantLocked(att) {
		return
	}
	o.cancelReveal = nil
	o.state.RevealScore = true
	o.state.Phase = PhaseSettled
	o.releaseLocked(att)
	log.Info("Prediction settled", "attemptID", att.id, "home", att.sel.Home, "away", att.sel.Away)
	o.publishLocked()
	o.deliverLocked(o.outcomeLocked(att))
}

// relevantLocked is the check every completion passes before committing: the
// attempt must still be on display and match the current selection.
func (o *Orchestrator) relevantLocked(att *attempt) bool {
	return o.display == att && o.state.Selection == att.sel
}

// releaseLocked drops the re-entrancy guard if att holds it.
func (o *Orchestrator) releaseLocked(att *attempt) {
	if o.inFlight == att {
		o.inFlight = nil
	}
}

// rearmLocked restarts the debounce for a selection whose trigger was
// dropped while the guard was held.
func (o *Orchestrator) rearmLocked() {
	sel := o.state.Selection
	if o.state.Phase != PhasePending || o.pendingFor != nil || !sel.Eligible() {
		return
	}
	log.Debug("Re-arming debounce after guard release", "home", sel.Home, "away", sel.Away)
	o.enterPendingLocked(sel)
	o.publishLocked()
}

// invalidateLocked clears displayed data and forgets the attempt behind it.
// The guard stays held while that attempt's prediction call is outstanding.
func (o *Orchestrator) invalidateLocked() {
	o.cancelRevealLocked()
	if o.display != nil && o.display.predicted {
		o.releaseLocked(o.display)
	}
	o.display = nil
	o.state.HomeTeam = nil
	o.state.AwayTeam = nil
	o.state.Result = nil
	o.state.HomeStats = nil
	o.state.AwayStats = nil
	o.state.RevealScore = false
	o.state.StatsPending = 0
	o.state.AttemptID = ""
}

func (o *Orchestrator) cancelDebounceLocked() bool {
	o.pendingFor = nil
	if o.cancelDebounce == nil {
		return false
	}
	stopped := o.cancelDebounce()
	o.cancelDebounce = nil
	return stopped
}

func (o *Orchestrator) cancelRevealLocked() {
	if o.cancelReveal != nil {
		o.cancelReveal()
		o.cancelReveal = nil
	}
}

// lookupTeams resolves both names against the loaded team list.
func (o *Orchestrator) lookupTeams(sel selection.Selection) (home, away *backend.Team, loaded bool) {
	o.teamsMu.Lock()
	defer o.teamsMu.Unlock()
	if o.teams == nil {
		return nil, nil, false
	}
	return findTeam(o.teams, sel.Home), findTeam(o.teams, sel.Away), true
}

func findTeam(teams []backend.Team, name string) *backend.Team {
	for i := range teams {
		if teams[i].Name == name {
			t := teams[i]
			return &t
		}
	}
	for i := range teams {
		if strings.EqualFold(teams[i].Name, name) || strings.EqualFold(teams[i].ShortName, name) {
			t := teams[i]
			return &t
		}
	}
	return nil
}

func (o *Orchestrator) callContext() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(o.ctx, o.timeout)
	}
	return context.WithCancel(o.ctx)
}

func (o *Orchestrator) outcomeLocked(att *attempt) Outcome {
	return Outcome{
		AttemptID:  att.id,
		Selection:  att.sel,
		Phase:      o.state.Phase,
		Result:     o.state.Result,
		HomeStats:  o.state.HomeStats,
		AwayStats:  o.state.AwayStats,
		Err:        o.state.Err,
		StartedAt:  att.startedAt,
		FinishedAt: time.Now(),
	}
}

func (o *Orchestrator) deliverLocked(outcome Outcome) {
	for _, sink := range o.sinks {
		o.wg.Add(1)
		go func(sink Sink) {
			defer o.wg.Done()
			ctx, cancel := context.WithTimeout(o.ctx, sinkTimeout)
			defer cancel()
			if err := sink.Deliver(ctx, outcome); err != nil {
				log.Error("Failed to deliver outcome", "attemptID", outcome.AttemptID, "sink", fmt.Sprintf("%T", sink), "error", err)
			}
		}(sink)
	}
}

// publishLocked bumps the version and hands the state to every subscriber.
func (o *Orchestrator) publishLocked() {
	o.state.Version++
	for ch := range o.subs {
		select {
		case ch <- o.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- o.state
		}
	}
}
