package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/selection"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func intPtr(v int) *int { return &v }

func settledOutcome() orchestrator.Outcome {
	return orchestrator.Outcome{
		AttemptID: "attempt-1",
		Selection: selection.Selection{Home: "Arsenal", Away: "Chelsea"},
		Phase:     orchestrator.PhaseSettled,
		Result: &backend.MatchPrediction{
			HomeTeam:           "Arsenal",
			AwayTeam:           "Chelsea",
			PredictedResult:    backend.HomeWin,
			HomeWinProbability: 0.55,
			DrawProbability:    0.25,
			AwayWinProbability: 0.20,
			PredictedHomeScore: intPtr(2),
			PredictedAwayScore: intPtr(1),
			Confidence:         0.62,
		},
		HomeStats: &backend.TeamStats{Team: "Arsenal", Position: intPtr(2), Points: 55, GoalDiff: 30, Form: backend.Form{"W", "W", "D"}},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendPredictionSettled_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendPredictionSettled(context.Background(), settledOutcome(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendPredictionSettled")
}

func TestFormatPredictionSettled(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPredictionSettled(settledOutcome())
	require.Len(t, msg.Blocks.BlockSet, 5, "Expected header, verdict, probabilities, stats and context")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "⚽ Arsenal vs Chelsea ⚽", header.Text.Text)

	verdict, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, verdict.Text.Text, "*Prediction*: Arsenal win")
	assert.Contains(t, verdict.Text.Text, "*Score*: 2 - 1")

	probabilities, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, probabilities.Fields, 3)
	assert.Equal(t, "*Arsenal*\n55%", probabilities.Fields[0].Text)
	assert.Equal(t, "*Draw*\n25%", probabilities.Fields[1].Text)
	assert.Equal(t, "*Chelsea*\n20%", probabilities.Fields[2].Text)

	stats, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Arsenal*: #2, 55 pts, GD +30, form WWD", stats.Text.Text, "Missing away stats are left out")

	_, ok = msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	assert.True(t, ok)
}

func TestFormatPredictionSettled_WithoutScoreOrStats(t *testing.T) {
	outcome := settledOutcome()
	outcome.HomeStats = nil
	outcome.Result.PredictedResult = backend.Draw
	outcome.Result.PredictedHomeScore = nil

	client := &Notifier{channelID: "C123"}
	msg := client.formatPredictionSettled(outcome)
	require.Len(t, msg.Blocks.BlockSet, 4)

	verdict, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Prediction*: Draw", verdict.Text.Text)
}

func TestFormatPredictionFailed(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPredictionFailed(orchestrator.Outcome{
		AttemptID: "attempt-2",
		Selection: selection.Selection{Home: "Arsenal", Away: "Chelsea"},
		Phase:     orchestrator.PhaseFailed,
		Err:       "predict match: service unavailable (status 503)",
	})
	require.Len(t, msg.Blocks.BlockSet, 3)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Arsenal* vs *Chelsea*\n> predict match: service unavailable (status 503)", section.Text.Text)
}
