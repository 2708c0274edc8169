package orchestrator

import "context"

// Sink receives the outcome of every attempt that settles or fails.
// Deliveries run off the state machine; a slow sink never delays a transition.
type Sink interface {
	Deliver(ctx context.Context, outcome Outcome) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, outcome Outcome) error

func (f SinkFunc) Deliver(ctx context.Context, outcome Outcome) error {
	return f(ctx, outcome)
}
