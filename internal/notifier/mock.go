package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendPredictionSettledFunc func(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error
	SendPredictionFailedFunc  func(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error

	// Call records
	SendPredictionSettledCalls []orchestrator.Outcome
	SendPredictionFailedCalls  []orchestrator.Outcome
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPredictionSettledCalls = nil
	m.SendPredictionFailedCalls = nil
}

func (m *Mock) SendPredictionSettled(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error {
	m.mu.Lock()
	m.SendPredictionSettledCalls = append(m.SendPredictionSettledCalls, outcome)
	fn := m.SendPredictionSettledFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, outcome, dryRun)
	}
	return nil
}

func (m *Mock) SendPredictionFailed(ctx context.Context, outcome orchestrator.Outcome, dryRun bool) error {
	m.mu.Lock()
	m.SendPredictionFailedCalls = append(m.SendPredictionFailedCalls, outcome)
	fn := m.SendPredictionFailedFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, outcome, dryRun)
	}
	return nil
}

// Settled returns a copy of the recorded settled notifications.
func (m *Mock) Settled() []orchestrator.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]orchestrator.Outcome(nil), m.SendPredictionSettledCalls...)
}

// Failed returns a copy of the recorded failure notifications.
func (m *Mock) Failed() []orchestrator.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]orchestrator.Outcome(nil), m.SendPredictionFailedCalls...)
}
