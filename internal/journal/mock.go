package journal

import (
	"context"
	"sync"

	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// MockJournal is an in-memory implementation of the Journal interface for testing.
type MockJournal struct {
	mu sync.Mutex

	RecordFunc func(ctx context.Context, outcome orchestrator.Outcome) error
	RecentFunc func(ctx context.Context, limit int) ([]Entry, error)

	RecordCalls []orchestrator.Outcome
	RecentCalls []int
}

var _ Journal = (*MockJournal)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockJournal {
	return &MockJournal{}
}

func (m *MockJournal) Record(ctx context.Context, outcome orchestrator.Outcome) error {
	m.mu.Lock()
	m.RecordCalls = append(m.RecordCalls, outcome)
	fn := m.RecordFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, outcome)
	}
	return nil
}

func (m *MockJournal) Deliver(ctx context.Context, outcome orchestrator.Outcome) error {
	return m.Record(ctx, outcome)
}

func (m *MockJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	m.RecentCalls = append(m.RecentCalls, limit)
	fn := m.RecentFunc
	recorded := append([]orchestrator.Outcome(nil), m.RecordCalls...)
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, limit)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries := []Entry{}
	for i := len(recorded) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, entryFromOutcome(recorded[i]))
	}
	return entries, nil
}

func (m *MockJournal) Get(ctx context.Context, attemptID string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.RecordCalls {
		if o.AttemptID == attemptID {
			e := entryFromOutcome(o)
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func entryFromOutcome(o orchestrator.Outcome) Entry {
	return Entry{
		AttemptID:  o.AttemptID,
		HomeTeam:   o.Selection.Home,
		AwayTeam:   o.Selection.Away,
		Phase:      o.Phase,
		Result:     o.Result,
		HomeStats:  o.HomeStats,
		AwayStats:  o.AwayStats,
		Err:        o.Err,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
	}
}
