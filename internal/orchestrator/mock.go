package orchestrator

import (
	"context"
	"sync"
)

// MockSink is a mock implementation of the Sink interface for testing.
// It is safe for concurrent use.
type MockSink struct {
	mu sync.Mutex

	DeliverFunc func(ctx context.Context, outcome Outcome) error

	DeliverCalls []Outcome
}

var _ Sink = (*MockSink)(nil)

// NewMockSink creates a new mock instance.
func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) Deliver(ctx context.Context, outcome Outcome) error {
	m.mu.Lock()
	m.DeliverCalls = append(m.DeliverCalls, outcome)
	fn := m.DeliverFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, outcome)
	}
	return nil
}

// Delivered returns a copy of the recorded outcomes.
func (m *MockSink) Delivered() []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Outcome(nil), m.DeliverCalls...)
}
