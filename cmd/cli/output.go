package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderState prints a plain-text view of an orchestration state.
func renderState(s orchestrator.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Phase:"), s.Phase)
	fmt.Fprintf(&b, "%s %s vs %s\n", labelStyle.Render("Match:"), slot(s.Selection.Home), slot(s.Selection.Away))
	if s.Err != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Error:"), s.Err)
	}
	if r := s.Result; r != nil {
		fmt.Fprintf(&b, "%s %s (confidence %s)\n", labelStyle.Render("Prediction:"), r.PredictedResult.Label(), percent(r.Confidence))
		fmt.Fprintf(&b, "  Home %s  Draw %s  Away %s\n",
			percent(r.HomeWinProbability), percent(r.DrawProbability), percent(r.AwayWinProbability))
		if s.RevealScore && r.HasScore() {
			fmt.Fprintf(&b, "%s %d - %d\n", labelStyle.Render("Score:"), *r.PredictedHomeScore, *r.PredictedAwayScore)
		}
	}
	if s.Result != nil || s.HomeStats != nil || s.AwayStats != nil {
		b.WriteString(renderStatsPair(s.Selection.Home, s.HomeStats, s.Selection.Away, s.AwayStats))
		b.WriteString("\n")
	}
	return b.String()
}

func renderStatsPair(home string, hs *backend.TeamStats, away string, as *backend.TeamStats) string {
	t := newTable("", home, away)
	row := func(label string, f func(backend.TeamStats) string) {
		t.Row(label, statCell(hs, f), statCell(as, f))
	}
	row("Points", func(s backend.TeamStats) string { return strconv.Itoa(s.Points) })
	row("Played", func(s backend.TeamStats) string { return strconv.Itoa(s.MatchesPlayed) })
	row("W-D-L", func(s backend.TeamStats) string { return fmt.Sprintf("%d-%d-%d", s.Wins, s.Draws, s.Losses) })
	row("Goals", func(s backend.TeamStats) string { return fmt.Sprintf("%d:%d (%+d)", s.GoalsFor, s.GoalsAgainst, s.GoalDiff) })
	row("Form", func(s backend.TeamStats) string { return s.Form.String() })
	return t.String()
}

func statCell(s *backend.TeamStats, f func(backend.TeamStats) string) string {
	if s == nil {
		return "n/a"
	}
	return f(*s)
}

// renderStats prints a single team's season statistics.
func renderStats(team string, s *backend.TeamStats) string {
	t := newTable("", team)
	position := "-"
	if s.Position != nil {
		position = strconv.Itoa(*s.Position)
	}
	t.Row("Position", position)
	t.Row("Points", strconv.Itoa(s.Points))
	t.Row("Played", strconv.Itoa(s.MatchesPlayed))
	t.Row("W-D-L", fmt.Sprintf("%d-%d-%d", s.Wins, s.Draws, s.Losses))
	t.Row("Goals", fmt.Sprintf("%d:%d (%+d)", s.GoalsFor, s.GoalsAgainst, s.GoalDiff))
	t.Row("Win rate", percent(s.WinRate()))
	t.Row("Form", s.Form.String())
	return t.String()
}

// renderHistory prints journaled attempts, newest first.
func renderHistory(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "No attempts recorded yet."
	}
	t := newTable("Finished", "Match", "Phase", "Result", "Took")
	for _, e := range entries {
		result := e.Err
		if e.Result != nil {
			result = e.Result.PredictedResult.Label()
			if e.Result.HasScore() {
				result += fmt.Sprintf(" %d-%d", *e.Result.PredictedHomeScore, *e.Result.PredictedAwayScore)
			}
		}
		t.Row(
			e.FinishedAt.Local().Format(time.DateTime),
			e.HomeTeam+" vs "+e.AwayTeam,
			string(e.Phase),
			result,
			e.Duration().Round(time.Millisecond).String(),
		)
	}
	return t.String()
}

func renderTeams(teams []backend.Team) string {
	t := newTable("ID", "Name", "Short")
	for _, team := range teams {
		t.Row(strconv.Itoa(team.ID), team.Name, team.ShortName)
	}
	return t.String()
}

func renderFixtures(matches []backend.Match) string {
	t := newTable("Date", "Home", "Away", "Status", "Score")
	for _, m := range matches {
		score := "-"
		if m.HomeScore != nil && m.AwayScore != nil {
			score = fmt.Sprintf("%d - %d", *m.HomeScore, *m.AwayScore)
		}
		t.Row(m.Date.Format(time.DateTime), m.HomeTeam, m.AwayTeam, m.Status, score)
	}
	return t.String()
}

func renderSeason(s backend.SeasonPrediction) string {
	t := newTable("Pos", "Team", "Points", "Now")
	for _, row := range s.PredictedStandings {
		t.Row(
			strconv.Itoa(row.PredictedPosition),
			row.Team,
			strconv.Itoa(row.PredictedPoints),
			fmt.Sprintf("%d (%d pts)", row.CurrentPosition, row.CurrentPoints),
		)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Season:"), s.Season)
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("Champion:"), s.PredictedChampion)
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Relegated:"), strings.Join(s.PredictedRelegated, ", "))
	return b.String()
}

func renderPlayers(players []backend.Player) string {
	t := newTable("#", "Name", "Position", "Nationality")
	for _, p := range players {
		number := ""
		if p.ShirtNumber != nil {
			number = strconv.Itoa(*p.ShirtNumber)
		}
		t.Row(number, p.Name, p.Position, p.Nationality)
	}
	return t.String()
}

func slot(name string) string {
	if name == "" {
		return "?"
	}
	return name
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
