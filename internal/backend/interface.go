package backend

import "context"

// BackendClient defines the interface for interacting with the prediction backend.
// This allows for mock implementations to be used in tests.
type BackendClient interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ListMatches(ctx context.Context) ([]Match, error)
	GetTeamStats(ctx context.Context, team string) (TeamStats, error)
	PredictMatch(ctx context.Context, homeTeam, awayTeam string) (MatchPrediction, error)
	PredictSeason(ctx context.Context) (SeasonPrediction, error)
	ListRoster(ctx context.Context, team string) ([]Player, error)
	Health(ctx context.Context) (Health, error)
}
