package notifier

import (
	"context"
	"testing"

	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_RoutesByPhase(t *testing.T) {
	mock := NewMock()
	sink := Sink(mock, true)
	ctx := context.Background()

	require.NoError(t, sink.Deliver(ctx, orchestrator.Outcome{AttemptID: "s", Phase: orchestrator.PhaseSettled}))
	require.NoError(t, sink.Deliver(ctx, orchestrator.Outcome{AttemptID: "f", Phase: orchestrator.PhaseFailed}))

	require.Len(t, mock.Settled(), 1)
	assert.Equal(t, "s", mock.Settled()[0].AttemptID)
	require.Len(t, mock.Failed(), 1)
	assert.Equal(t, "f", mock.Failed()[0].AttemptID)
}

func TestSink_RejectsNonTerminalPhase(t *testing.T) {
	mock := NewMock()
	err := Sink(mock, false).Deliver(context.Background(), orchestrator.Outcome{AttemptID: "p", Phase: orchestrator.PhasePending})

	assert.Error(t, err)
	assert.Empty(t, mock.Settled())
	assert.Empty(t, mock.Failed())
}
