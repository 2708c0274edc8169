package pubsub

import (
	"context"
	"fmt"

	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Sink publishes finished attempts as prediction-settled or prediction-failed events.
func Sink(c PubSubClient, m metrics.Metrics) orchestrator.Sink {
	return orchestrator.SinkFunc(func(ctx context.Context, outcome orchestrator.Outcome) error {
		var event EventType
		switch outcome.Phase {
		case orchestrator.PhaseSettled:
			event = EventPredictionSettled
		case orchestrator.PhaseFailed:
			event = EventPredictionFailed
		default:
			return fmt.Errorf("cannot publish attempt %s in phase %s", outcome.AttemptID, outcome.Phase)
		}
		if err := c.SendMessage(ctx, event, outcome); err != nil {
			return err
		}
		m.IncOutcomesPublished()
		return nil
	})
}
