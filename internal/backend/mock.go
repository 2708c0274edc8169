package backend

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the BackendClient interface for testing.
// It is safe for concurrent use. The Func hooks run outside the lock so that
// tests can block inside them.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ListTeamsFunc     func(ctx context.Context) ([]Team, error)
	ListMatchesFunc   func(ctx context.Context) ([]Match, error)
	GetTeamStatsFunc  func(ctx context.Context, team string) (TeamStats, error)
	PredictMatchFunc  func(ctx context.Context, homeTeam, awayTeam string) (MatchPrediction, error)
	PredictSeasonFunc func(ctx context.Context) (SeasonPrediction, error)
	ListRosterFunc    func(ctx context.Context, team string) ([]Player, error)
	HealthFunc        func(ctx context.Context) (Health, error)

	// Call records
	ListTeamsCalls     int
	ListMatchesCalls   int
	GetTeamStatsCalls  []string
	PredictMatchCalls  []PredictMatchCall
	PredictSeasonCalls int
	ListRosterCalls    []string
	HealthCalls        int
}

// PredictMatchCall holds the arguments for a call to PredictMatch.
type PredictMatchCall struct {
	HomeTeam string
	AwayTeam string
}

var _ BackendClient = (*MockClient)(nil)

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListTeamsCalls = 0
	m.ListMatchesCalls = 0
	m.GetTeamStatsCalls = nil
	m.PredictMatchCalls = nil
	m.PredictSeasonCalls = 0
	m.ListRosterCalls = nil
	m.HealthCalls = 0
}

func (m *MockClient) ListTeams(ctx context.Context) ([]Team, error) {
	m.mu.Lock()
	m.ListTeamsCalls++
	fn := m.ListTeamsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return []Team{}, nil
}

func (m *MockClient) ListMatches(ctx context.Context) ([]Match, error) {
	m.mu.Lock()
	m.ListMatchesCalls++
	fn := m.ListMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return []Match{}, nil
}

func (m *MockClient) GetTeamStats(ctx context.Context, team string) (TeamStats, error) {
	m.mu.Lock()
	m.GetTeamStatsCalls = append(m.GetTeamStatsCalls, team)
	fn := m.GetTeamStatsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, team)
	}
	return TeamStats{Team: team}, nil
}

func (m *MockClient) PredictMatch(ctx context.Context, homeTeam, awayTeam string) (MatchPrediction, error) {
	m.mu.Lock()
	m.PredictMatchCalls = append(m.PredictMatchCalls, PredictMatchCall{HomeTeam: homeTeam, AwayTeam: awayTeam})
	fn := m.PredictMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, homeTeam, awayTeam)
	}
	return MatchPrediction{HomeTeam: homeTeam, AwayTeam: awayTeam, PredictedResult: Draw}, nil
}

func (m *MockClient) PredictSeason(ctx context.Context) (SeasonPrediction, error) {
	m.mu.Lock()
	m.PredictSeasonCalls++
	fn := m.PredictSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return SeasonPrediction{}, nil
}

func (m *MockClient) ListRoster(ctx context.Context, team string) ([]Player, error) {
	m.mu.Lock()
	m.ListRosterCalls = append(m.ListRosterCalls, team)
	fn := m.ListRosterFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, team)
	}
	return []Player{}, nil
}

func (m *MockClient) Health(ctx context.Context) (Health, error) {
	m.mu.Lock()
	m.HealthCalls++
	fn := m.HealthFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return Health{Status: "healthy"}, nil
}

// PredictCalls returns a copy of the recorded PredictMatch calls.
func (m *MockClient) PredictCalls() []PredictMatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PredictMatchCall(nil), m.PredictMatchCalls...)
}

// StatsCalls returns a copy of the recorded GetTeamStats calls.
func (m *MockClient) StatsCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.GetTeamStatsCalls...)
}
