package backend

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// naiveLayout is the zone-less ISO layout the backend emits for naive datetimes.
const naiveLayout = "2006-01-02T15:04:05"

// Timestamp decodes both RFC 3339 and zone-less backend datetimes.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	// Python isoformat() may carry microseconds without a zone.
	if i := strings.IndexByte(raw, '.'); i > 0 {
		raw = raw[:i]
	}
	parsed, err := time.Parse(naiveLayout, raw)
	if err != nil {
		return fmt.Errorf("failed to parse timestamp %q: %w", raw, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Team is an entry of the team listing.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	CrestURL  string `json:"crest,omitempty"`
	Founded   *int   `json:"founded,omitempty"`
}

// Match is an upcoming or finished fixture.
type Match struct {
	ID        int       `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Date      Timestamp `json:"date"`
	Status    string    `json:"status"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
}

// Outcome is the predicted full-time result of a match.
type Outcome string

const (
	HomeWin Outcome = "HOME_WIN"
	AwayWin Outcome = "AWAY_WIN"
	Draw    Outcome = "DRAW"
)

// Label returns a human readable form of the outcome.
func (o Outcome) Label() string {
	switch o {
	case HomeWin:
		return "Home Win"
	case AwayWin:
		return "Away Win"
	case Draw:
		return "Draw"
	default:
		return string(o)
	}
}

// MatchPrediction is the backend's forecast for a single fixture.
// Probabilities are passed through as received; the backend owns their consistency.
type MatchPrediction struct {
	HomeTeam           string  `json:"home_team" msgpack:"home_team"`
	AwayTeam           string  `json:"away_team" msgpack:"away_team"`
	PredictedResult    Outcome `json:"predicted_result" msgpack:"predicted_result"`
	HomeWinProbability float64 `json:"home_win_probability" msgpack:"home_win_probability"`
	DrawProbability    float64 `json:"draw_probability" msgpack:"draw_probability"`
	AwayWinProbability float64 `json:"away_win_probability" msgpack:"away_win_probability"`
	PredictedHomeScore *int    `json:"predicted_home_score,omitempty" msgpack:"predicted_home_score,omitempty"`
	PredictedAwayScore *int    `json:"predicted_away_score,omitempty" msgpack:"predicted_away_score,omitempty"`
	Confidence         float64 `json:"confidence" msgpack:"confidence"`
}

// HasScore reports whether both score predictions are present.
func (p MatchPrediction) HasScore() bool {
	return p.PredictedHomeScore != nil && p.PredictedAwayScore != nil
}

// FormResult is a single entry of a team's recent form.
type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

// Form is a team's recent results, oldest first.
type Form []FormResult

// UnmarshalJSON accepts both the compact "WWDLW" string and a JSON array of letters.
func (f *Form) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}

	var letters []string
	var compact string
	if err := json.Unmarshal(data, &compact); err == nil {
		for _, r := range strings.TrimSpace(compact) {
			letters = append(letters, string(r))
		}
	} else if err := json.Unmarshal(data, &letters); err != nil {
		return fmt.Errorf("form must be a string or an array: %w", err)
	}

	form := make(Form, 0, len(letters))
	for _, l := range letters {
		switch r := FormResult(strings.ToUpper(l)); r {
		case FormWin, FormDraw, FormLoss:
			form = append(form, r)
		default:
			return fmt.Errorf("unknown form result %q", l)
		}
	}
	*f = form
	return nil
}

// String renders the form in its compact representation.
func (f Form) String() string {
	var b strings.Builder
	for _, r := range f {
		b.WriteString(string(r))
	}
	return b.String()
}

// Record is a home or away split of a team's season.
type Record struct {
	Played       int `json:"played,omitempty"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for,omitempty"`
	GoalsAgainst int `json:"goals_against,omitempty"`
}

// TeamStats is a team's season statistics.
type TeamStats struct {
	Team          string  `json:"team" msgpack:"team"`
	Position      *int    `json:"position,omitempty" msgpack:"position,omitempty"`
	Points        int     `json:"points" msgpack:"points"`
	MatchesPlayed int     `json:"matches_played" msgpack:"matches_played"`
	Wins          int     `json:"wins" msgpack:"wins"`
	Draws         int     `json:"draws" msgpack:"draws"`
	Losses        int     `json:"losses" msgpack:"losses"`
	GoalsFor      int     `json:"goals_for" msgpack:"goals_for"`
	GoalsAgainst  int     `json:"goals_against" msgpack:"goals_against"`
	GoalDiff      int     `json:"goal_diff" msgpack:"goal_diff"`
	Form          Form    `json:"form,omitempty" msgpack:"form,omitempty"`
	HomeRecord    *Record `json:"home_record,omitempty" msgpack:"-"`
	AwayRecord    *Record `json:"away_record,omitempty" msgpack:"-"`
}

// UnmarshalJSON derives goal_diff from the goal totals when the backend omits it.
func (s *TeamStats) UnmarshalJSON(data []byte) error {
	type plain TeamStats
	var aux struct {
		plain
		GoalDiff *int `json:"goal_diff"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = TeamStats(aux.plain)
	if aux.GoalDiff != nil {
		s.GoalDiff = *aux.GoalDiff
	} else {
		s.GoalDiff = s.GoalsFor - s.GoalsAgainst
	}
	return nil
}

// WinRate returns the share of matches won, or zero before the first match.
func (s TeamStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.MatchesPlayed)
}

// Player is a squad member from a team roster.
type Player struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Role        string `json:"role,omitempty"`
	ShirtNumber *int   `json:"shirtNumber,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// StandingPrediction is one row of a season forecast table.
type StandingPrediction struct {
	Team              string `json:"team"`
	PredictedPoints   int    `json:"predicted_points"`
	CurrentPoints     int    `json:"current_points"`
	CurrentPosition   int    `json:"current_position"`
	PredictedPosition int    `json:"predicted_position"`
}

// SeasonPrediction is the backend's season-long forecast.
type SeasonPrediction struct {
	Season             string               `json:"season"`
	PredictedStandings []StandingPrediction `json:"predicted_standings"`
	PredictedChampion  string               `json:"predicted_champion"`
	PredictedRelegated []string             `json:"predicted_relegated"`
	UpdatedAt          Timestamp            `json:"updated_at"`
}

// Health is the backend's health report.
type Health struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	ModelsLoaded bool   `json:"models_loaded"`
}
