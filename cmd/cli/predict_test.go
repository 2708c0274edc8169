package main

import (
	"context"
	"testing"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/stretchr/testify/assert"
)

type fakeWaiter struct {
	calls int
	next  orchestrator.State
}

func (f *fakeWaiter) WaitFor(ctx context.Context, done func(orchestrator.State) bool) (orchestrator.State, error) {
	f.calls++
	return f.next, nil
}

func TestSettleStats_NoWaitWhenNothingOutstanding(t *testing.T) {
	w := &fakeWaiter{}
	settled := orchestrator.State{Phase: orchestrator.PhaseSettled, AttemptID: "a1", AwayStats: &backend.TeamStats{Team: "Chelsea"}}

	got := settleStats(context.Background(), w, settled)

	assert.Zero(t, w.calls, "a failed stats call leaves nothing to wait for")
	assert.Equal(t, settled, got)
}

func TestSettleStats_WaitsForOutstandingCalls(t *testing.T) {
	settled := orchestrator.State{Phase: orchestrator.PhaseSettled, AttemptID: "a1", StatsPending: 1}
	landed := settled
	landed.StatsPending = 0
	landed.HomeStats = &backend.TeamStats{Team: "Arsenal"}
	w := &fakeWaiter{next: landed}

	got := settleStats(context.Background(), w, settled)

	assert.Equal(t, 1, w.calls)
	assert.Equal(t, landed, got)
}

func TestSettleStats_IgnoresOtherAttempts(t *testing.T) {
	settled := orchestrator.State{Phase: orchestrator.PhaseSettled, AttemptID: "a1", StatsPending: 2}
	w := &fakeWaiter{next: orchestrator.State{Phase: orchestrator.PhasePending}}

	assert.Equal(t, settled, settleStats(context.Background(), w, settled))
}
