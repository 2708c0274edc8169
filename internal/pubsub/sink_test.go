package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestSink_PublishesSettledOutcome(t *testing.T) {
	client := NewMock()
	m := metrics.NewMock()
	home, away := 2, 1
	finished := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	outcome := orchestrator.Outcome{
		AttemptID: "attempt-1",
		Selection: selection.Selection{Home: "Arsenal", Away: "Chelsea"},
		Phase:     orchestrator.PhaseSettled,
		Result: &backend.MatchPrediction{
			HomeTeam:           "Arsenal",
			AwayTeam:           "Chelsea",
			PredictedResult:    backend.HomeWin,
			HomeWinProbability: 0.55,
			PredictedHomeScore: &home,
			PredictedAwayScore: &away,
		},
		HomeStats:  &backend.TeamStats{Team: "Arsenal", Points: 55, Form: backend.Form{"W", "L"}},
		StartedAt:  finished.Add(-time.Second),
		FinishedAt: finished,
	}

	err := Sink(client, m).Deliver(context.Background(), outcome)
	require.NoError(t, err)

	sent := client.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, EventPredictionSettled, sent[0].Event)
	assert.Equal(t, 1, m.OutcomesPublished())

	var decoded orchestrator.Outcome
	require.NoError(t, client.ProcessMessage(sent[0].Encoded, &decoded))
	assert.Equal(t, "attempt-1", decoded.AttemptID)
	assert.Equal(t, outcome.Selection, decoded.Selection)
	require.NotNil(t, decoded.Result)
	assert.Equal(t, backend.HomeWin, decoded.Result.PredictedResult)
	require.True(t, decoded.Result.HasScore())
	assert.Equal(t, 2, *decoded.Result.PredictedHomeScore)
	require.NotNil(t, decoded.HomeStats)
	assert.Equal(t, "WL", decoded.HomeStats.Form.String())
	assert.Nil(t, decoded.AwayStats)
	assert.True(t, finished.Equal(decoded.FinishedAt))

	var raw map[string]any
	require.NoError(t, msgpack.Unmarshal(sent[0].Encoded, &raw))
	assert.Equal(t, map[string]any{"home": "Arsenal", "away": "Chelsea"}, raw["selection"])
	assert.Contains(t, raw, "attempt_id")
}

func TestSink_PublishesFailedOutcome(t *testing.T) {
	client := NewMock()
	m := metrics.NewMock()

	err := Sink(client, m).Deliver(context.Background(), orchestrator.Outcome{
		AttemptID: "attempt-2",
		Phase:     orchestrator.PhaseFailed,
		Err:       "boom",
	})
	require.NoError(t, err)

	sent := client.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, EventPredictionFailed, sent[0].Event)
}

func TestSink_PublishFailureIsNotCounted(t *testing.T) {
	client := NewMock()
	client.SendMessageFunc = func(ctx context.Context, event EventType, data any) error {
		return errors.New("topic not found")
	}
	m := metrics.NewMock()

	err := Sink(client, m).Deliver(context.Background(), orchestrator.Outcome{Phase: orchestrator.PhaseSettled})
	assert.Error(t, err)
	assert.Zero(t, m.OutcomesPublished())
}

func TestSink_RejectsNonTerminalPhase(t *testing.T) {
	client := NewMock()

	err := Sink(client, metrics.NewMock()).Deliver(context.Background(), orchestrator.Outcome{Phase: orchestrator.PhaseInFlight})
	assert.Error(t, err)
	assert.Empty(t, client.Sent())
}
