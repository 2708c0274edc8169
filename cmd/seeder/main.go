package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/selection"
)

var seedTeams = []string{
	"Arsenal", "Aston Villa", "Brentford", "Brighton", "Chelsea", "Crystal Palace",
	"Everton", "Fulham", "Liverpool", "Manchester City", "Manchester United",
	"Newcastle", "Nottingham Forest", "Tottenham", "West Ham", "Wolves",
}

func main() {
	count := flag.Int("n", 500, "Number of attempts to insert")
	failRate := flag.Float64("fail-rate", 0.1, "Share of attempts that end in FAILED")
	flag.Parse()

	log.Info("Starting journal seeder...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	cfg.SetupLogging()

	db, cleanup, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer cleanup()

	j := journal.New(db)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Info("Preparing to insert attempts...", "total", *count)
	startTime := time.Now()
	for i := 0; i < *count; i++ {
		outcome := randomOutcome(rng, *failRate)
		if err := j.Record(ctx, outcome); err != nil {
			log.Fatal("Failed to record attempt", "attempt_id", outcome.AttemptID, "error", err)
		}
		if (i+1)%100 == 0 {
			log.Info("Inserted batch", "completed", i+1, "total", *count)
		}
	}
	log.Info("Successfully inserted all attempts.", "duration", time.Since(startTime))
}

func randomOutcome(rng *rand.Rand, failRate float64) orchestrator.Outcome {
	home := seedTeams[rng.Intn(len(seedTeams))]
	away := home
	for away == home {
		away = seedTeams[rng.Intn(len(seedTeams))]
	}
	started := time.Now().Add(-time.Duration(rng.Intn(30*24*60)) * time.Minute)
	outcome := orchestrator.Outcome{
		AttemptID:  uuid.NewString(),
		Selection:  selection.Selection{Home: home, Away: away},
		StartedAt:  started,
		FinishedAt: started.Add(time.Duration(200+rng.Intn(1500)) * time.Millisecond),
	}
	if rng.Float64() < failRate {
		outcome.Phase = orchestrator.PhaseFailed
		outcome.Err = "Failed to get prediction"
		return outcome
	}

	homeScore, awayScore := rng.Intn(4), rng.Intn(4)
	result := backend.Draw
	switch {
	case homeScore > awayScore:
		result = backend.HomeWin
	case awayScore > homeScore:
		result = backend.AwayWin
	}
	pHome := 0.2 + rng.Float64()*0.5
	pDraw := (1 - pHome) * (0.3 + rng.Float64()*0.3)
	outcome.Phase = orchestrator.PhaseSettled
	outcome.Result = &backend.MatchPrediction{
		HomeTeam:           home,
		AwayTeam:           away,
		PredictedResult:    result,
		HomeWinProbability: pHome,
		DrawProbability:    pDraw,
		AwayWinProbability: 1 - pHome - pDraw,
		PredictedHomeScore: &homeScore,
		PredictedAwayScore: &awayScore,
		Confidence:         0.4 + rng.Float64()*0.5,
	}
	outcome.HomeStats = randomStats(rng, home)
	if rng.Float64() > failRate {
		outcome.AwayStats = randomStats(rng, away)
	}
	return outcome
}

func randomStats(rng *rand.Rand, team string) *backend.TeamStats {
	played := 10 + rng.Intn(28)
	wins := rng.Intn(played + 1)
	draws := rng.Intn(played - wins + 1)
	goalsFor, goalsAgainst := wins*2+rng.Intn(10), (played-wins)+rng.Intn(10)
	form := make(backend.Form, 5)
	for i := range form {
		form[i] = []backend.FormResult{backend.FormWin, backend.FormDraw, backend.FormLoss}[rng.Intn(3)]
	}
	return &backend.TeamStats{
		Team:          team,
		Points:        wins*3 + draws,
		MatchesPlayed: played,
		Wins:          wins,
		Draws:         draws,
		Losses:        played - wins - draws,
		GoalsFor:      goalsFor,
		GoalsAgainst:  goalsAgainst,
		GoalDiff:      goalsFor - goalsAgainst,
		Form:          form,
	}
}
