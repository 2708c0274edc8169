package journal

import (
	"context"

	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Journal is an append-only record of finished prediction attempts.
type Journal interface {
	Record(ctx context.Context, outcome orchestrator.Outcome) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Get(ctx context.Context, attemptID string) (*Entry, error)
	// Deliver makes a Journal usable as an orchestrator sink.
	Deliver(ctx context.Context, outcome orchestrator.Outcome) error
}
