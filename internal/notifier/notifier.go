package notifier

import (
	"context"
	"fmt"

	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Notifier defines a high-level interface for announcing finished prediction attempts.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For attempts that revealed a prediction
	SendPredictionSettled(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error
	// For attempts whose prediction call failed or was rejected
	SendPredictionFailed(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error
}

// Sink adapts a Notifier to an orchestrator sink.
func Sink(n Notifier, dryRun bool) orchestrator.Sink {
	return orchestrator.SinkFunc(func(ctx context.Context, outcome orchestrator.Outcome) error {
		switch outcome.Phase {
		case orchestrator.PhaseSettled:
			return n.SendPredictionSettled(ctx, outcome, dryRun)
		case orchestrator.PhaseFailed:
			return n.SendPredictionFailed(ctx, outcome, dryRun)
		default:
			return fmt.Errorf("cannot notify attempt %s in phase %s", outcome.AttemptID, outcome.Phase)
		}
	})
}
