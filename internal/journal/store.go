package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// New creates a Journal backed by a migrated database.
func New(db *sql.DB) Journal {
	return &store{
		db: db,
	}
}

// Record inserts the outcome. Recording the same attempt twice keeps the first row.
func (s *store) Record(ctx context.Context, outcome orchestrator.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	homeStatsJSON, err := marshalNullable(outcome.HomeStats)
	if err != nil {
		return err
	}
	awayStatsJSON, err := marshalNullable(outcome.AwayStats)
	if err != nil {
		return err
	}

	var (
		result                      sql.NullString
		homeWin, draw, awayWin, cfd sql.NullFloat64
		homeScore, awayScore        sql.NullInt64
	)
	if p := outcome.Result; p != nil {
		result = sql.NullString{String: string(p.PredictedResult), Valid: true}
		homeWin = sql.NullFloat64{Float64: p.HomeWinProbability, Valid: true}
		draw = sql.NullFloat64{Float64: p.DrawProbability, Valid: true}
		awayWin = sql.NullFloat64{Float64: p.AwayWinProbability, Valid: true}
		cfd = sql.NullFloat64{Float64: p.Confidence, Valid: true}
		if p.PredictedHomeScore != nil {
			homeScore = sql.NullInt64{Int64: int64(*p.PredictedHomeScore), Valid: true}
		}
		if p.PredictedAwayScore != nil {
			awayScore = sql.NullInt64{Int64: int64(*p.PredictedAwayScore), Valid: true}
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attempts (id, home_team, away_team, phase, predicted_result, home_win_probability, draw_probability, away_win_probability, predicted_home_score, predicted_away_score, confidence, error, started_at, finished_at, home_stats_json, away_stats_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, outcome.AttemptID, outcome.Selection.Home, outcome.Selection.Away, string(outcome.Phase),
		result, homeWin, draw, awayWin, homeScore, awayScore, cfd,
		sql.NullString{String: outcome.Err, Valid: outcome.Err != ""},
		outcome.StartedAt.UnixMilli(), outcome.FinishedAt.UnixMilli(),
		homeStatsJSON, awayStatsJSON)
	if err != nil {
		return fmt.Errorf("failed to record attempt %s: %w", outcome.AttemptID, err)
	}
	log.Debug("Journaled attempt", "attemptID", outcome.AttemptID, "phase", outcome.Phase)
	return nil
}

// Deliver records the outcome.
func (s *store) Deliver(ctx context.Context, outcome orchestrator.Outcome) error {
	return s.Record(ctx, outcome)
}

// Recent returns the latest attempts, newest first.
func (s *store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectEntry+` ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("Failed to scan attempt row", "error", err)
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Get returns a single attempt by ID.
func (s *store) Get(ctx context.Context, attemptID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectEntry+` WHERE id = ?`, attemptID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

const selectEntry = `
	SELECT id, home_team, away_team, phase, predicted_result, home_win_probability, draw_probability, away_win_probability, predicted_home_score, predicted_away_score, confidence, error, started_at, finished_at, home_stats_json, away_stats_json
	FROM attempts`

// scanEntry is a helper function to scan a single attempt row.
func scanEntry(scanner interface{ Scan(...any) error }) (*Entry, error) {
	var (
		entry                       Entry
		phase                       string
		result, errText             sql.NullString
		homeWin, draw, awayWin, cfd sql.NullFloat64
		homeScore, awayScore        sql.NullInt64
		startedAt, finishedAt       int64
		homeStatsJSON, awayJSON     sql.NullString
	)
	err := scanner.Scan(&entry.AttemptID, &entry.HomeTeam, &entry.AwayTeam, &phase,
		&result, &homeWin, &draw, &awayWin, &homeScore, &awayScore, &cfd,
		&errText, &startedAt, &finishedAt, &homeStatsJSON, &awayJSON)
	if err != nil {
		return nil, err
	}

	entry.Phase = orchestrator.Phase(phase)
	entry.Err = errText.String
	entry.StartedAt = time.UnixMilli(startedAt)
	entry.FinishedAt = time.UnixMilli(finishedAt)
	if result.Valid {
		p := &backend.MatchPrediction{
			HomeTeam:           entry.HomeTeam,
			AwayTeam:           entry.AwayTeam,
			PredictedResult:    backend.Outcome(result.String),
			HomeWinProbability: homeWin.Float64,
			DrawProbability:    draw.Float64,
			AwayWinProbability: awayWin.Float64,
			Confidence:         cfd.Float64,
		}
		if homeScore.Valid {
			v := int(homeScore.Int64)
			p.PredictedHomeScore = &v
		}
		if awayScore.Valid {
			v := int(awayScore.Int64)
			p.PredictedAwayScore = &v
		}
		entry.Result = p
	}
	if entry.HomeStats, err = unmarshalNullable(homeStatsJSON); err != nil {
		return nil, err
	}
	if entry.AwayStats, err = unmarshalNullable(awayJSON); err != nil {
		return nil, err
	}
	return &entry, nil
}

func marshalNullable(stats *backend.TeamStats) (sql.NullString, error) {
	if stats == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal team stats: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalNullable(raw sql.NullString) (*backend.TeamStats, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var stats backend.TeamStats
	if err := json.Unmarshal([]byte(raw.String), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team stats: %w", err)
	}
	return &stats, nil
}
