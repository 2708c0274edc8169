package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is where a locally started backend listens.
	DefaultBaseURL = "http://localhost:8000"
	defaultTimeout = 10 * time.Second
	apiPrefix      = "/api"
)

// APIClient talks to the prediction backend over HTTP. It never retries: the
// first failure is returned to the caller.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new backend client. A zero timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) BackendClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Ensure APIClient implements the BackendClient interface.
var _ BackendClient = (*APIClient)(nil)

// ListTeams fetches every team known to the backend, in listing order.
func (c *APIClient) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "list teams", "/teams", ErrNotFound, &teams); err != nil {
		return nil, err
	}
	log.Debug("Fetched teams", "count", len(teams))
	return teams, nil
}

// ListMatches fetches the upcoming fixtures.
func (c *APIClient) ListMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	if err := c.get(ctx, "list matches", "/matches", ErrNotFound, &matches); err != nil {
		return nil, err
	}
	log.Debug("Fetched matches", "count", len(matches))
	return matches, nil
}

// GetTeamStats fetches the season statistics of a single team.
func (c *APIClient) GetTeamStats(ctx context.Context, team string) (TeamStats, error) {
	const op = "get team stats"
	if strings.TrimSpace(team) == "" {
		return TeamStats{}, &APIError{Op: op, Kind: ErrNotFound, Detail: "empty team name"}
	}

	var stats TeamStats
	if err := c.get(ctx, op, "/stats/"+url.PathEscape(team), ErrNotFound, &stats); err != nil {
		return TeamStats{}, err
	}
	// The backend answers an empty object when it holds nothing for the team.
	if stats.Team == "" {
		return TeamStats{}, &APIError{Op: op, Kind: ErrNotFound, Detail: fmt.Sprintf("no stats recorded for %q", team)}
	}
	return stats, nil
}

// PredictMatch asks the backend for the outcome of homeTeam against awayTeam.
// Empty or identical names are rejected without a request.
func (c *APIClient) PredictMatch(ctx context.Context, homeTeam, awayTeam string) (MatchPrediction, error) {
	const op = "predict match"
	if err := ValidatePair(homeTeam, awayTeam); err != nil {
		return MatchPrediction{}, &APIError{Op: op, Kind: ErrInvalidSelection, Detail: err.Error()}
	}

	path := fmt.Sprintf("/predict/match/%s/%s", url.PathEscape(homeTeam), url.PathEscape(awayTeam))
	var prediction MatchPrediction
	// An unknown team is a selection problem for this endpoint, not missing data.
	if err := c.get(ctx, op, path, ErrInvalidSelection, &prediction); err != nil {
		return MatchPrediction{}, err
	}
	return prediction, nil
}

// PredictSeason fetches the season-long forecast.
func (c *APIClient) PredictSeason(ctx context.Context) (SeasonPrediction, error) {
	var season SeasonPrediction
	if err := c.get(ctx, "predict season", "/predict/season", ErrNotFound, &season); err != nil {
		return SeasonPrediction{}, err
	}
	return season, nil
}

// ListRoster fetches the squad of a single team.
func (c *APIClient) ListRoster(ctx context.Context, team string) ([]Player, error) {
	const op = "list roster"
	if strings.TrimSpace(team) == "" {
		return nil, &APIError{Op: op, Kind: ErrNotFound, Detail: "empty team name"}
	}

	var players []Player
	if err := c.get(ctx, op, "/players/"+url.PathEscape(team), ErrNotFound, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Health fetches the backend health report.
func (c *APIClient) Health(ctx context.Context) (Health, error) {
	var health Health
	if err := c.get(ctx, "health", "/health", ErrServiceUnavailable, &health); err != nil {
		return Health{}, err
	}
	return health, nil
}

// ValidatePair rejects team pairs that can never be predicted.
func ValidatePair(homeTeam, awayTeam string) error {
	home, away := strings.TrimSpace(homeTeam), strings.TrimSpace(awayTeam)
	switch {
	case home == "" || away == "":
		return errors.New("both teams must be selected")
	case strings.EqualFold(home, away):
		return fmt.Errorf("a team cannot play itself: %q", home)
	}
	return nil
}

// get performs a GET against the API and decodes the JSON body into out.
// notFound is the kind reported for a 404 response.
func (c *APIClient) get(ctx context.Context, op, path string, notFound error, out any) error {
	endpoint := c.BaseURL + apiPrefix + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Op: op, Kind: ErrServiceUnavailable, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "pitchside/1.0")

	log.Debug("Requesting backend", "op", op, "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Kind: ErrServiceUnavailable, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Op: op, Status: resp.StatusCode, Detail: errorDetail(body)}
		switch resp.StatusCode {
		case http.StatusNotFound:
			apiErr.Kind = notFound
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			apiErr.Kind = ErrInvalidSelection
		default:
			apiErr.Kind = ErrServiceUnavailable
		}
		log.Warn("Received non-OK HTTP status from backend", "op", op, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Kind: ErrServiceUnavailable, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorDetail extracts FastAPI's {"detail": ...} message, falling back to the raw body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}
	return string(payload.Detail)
}
