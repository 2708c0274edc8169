package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/selection"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendPredictionSettled(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error {
	msg := s.formatPredictionSettled(outcome)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

func (s *Notifier) SendPredictionFailed(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error {
	msg := s.formatPredictionFailed(outcome)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// formatPredictionSettled creates the Slack message for a revealed prediction using Block Kit.
func (s *Notifier) formatPredictionSettled(outcome orchestrator.Outcome) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding.
	headerText := slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("⚽ %s vs %s ⚽", outcome.Selection.Home, outcome.Selection.Away), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	p := outcome.Result
	if p == nil {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No prediction available.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Verdict, with the predicted score when the backend sent one.
	verdict := fmt.Sprintf("*Prediction*: %s", verdictText(outcome.Selection, p.PredictedResult))
	if p.HasScore() {
		verdict += fmt.Sprintf("\n*Score*: %d - %d", *p.PredictedHomeScore, *p.PredictedAwayScore)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", verdict, false, false), nil, nil))

	// Probabilities as fields.
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s*\n%s", outcome.Selection.Home, percent(p.HomeWinProbability)), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Draw*\n%s", percent(p.DrawProbability)), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s*\n%s", outcome.Selection.Away, percent(p.AwayWinProbability)), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	// Stats, when either side arrived.
	var statLines []string
	if line := statsLine(outcome.Selection.Home, outcome.HomeStats); line != "" {
		statLines = append(statLines, line)
	}
	if line := statsLine(outcome.Selection.Away, outcome.AwayStats); line != "" {
		statLines = append(statLines, line)
	}
	if len(statLines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(statLines, "\n"), false, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	contextText := fmt.Sprintf("Confidence %s • Attempt %s", percent(p.Confidence), outcome.AttemptID)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", contextText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatPredictionFailed creates the Slack message for a failed attempt.
func (s *Notifier) formatPredictionFailed(outcome orchestrator.Outcome) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚠️ Prediction failed ⚠️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("*%s* vs *%s*", outcome.Selection.Home, outcome.Selection.Away)
	if outcome.Err != "" {
		detailsText += fmt.Sprintf("\n> %s", outcome.Err)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", detailsText, false, false), nil, nil))

	contextText := fmt.Sprintf("Attempt %s", outcome.AttemptID)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", contextText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// verdictText names the winning team rather than the side.
func verdictText(sel selection.Selection, result backend.Outcome) string {
	switch result {
	case backend.HomeWin:
		return sel.Home + " win"
	case backend.AwayWin:
		return sel.Away + " win"
	default:
		return result.Label()
	}
}

func statsLine(team string, stats *backend.TeamStats) string {
	if stats == nil {
		return ""
	}
	line := fmt.Sprintf("*%s*: %d pts, GD %+d", team, stats.Points, stats.GoalDiff)
	if stats.Position != nil {
		line = fmt.Sprintf("*%s*: #%d, %d pts, GD %+d", team, *stats.Position, stats.Points, stats.GoalDiff)
	}
	if len(stats.Form) > 0 {
		line += ", form " + stats.Form.String()
	}
	return line
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
