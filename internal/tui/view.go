package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

const barWidth = 20

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("⚽ Pitchside match predictor"))
	b.WriteString("\n")

	switch {
	case m.teamsErr != nil:
		b.WriteString(errorStyle.Render("Could not load teams: " + m.teamsErr.Error()))
		b.WriteString("\n" + mutedStyle.Render("r retry • q quit") + "\n")
		return b.String()
	case m.teams == nil:
		b.WriteString(mutedStyle.Render("Loading teams...") + "\n")
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderColumn(slotHome, "HOME", m.state.Selection.Home),
		" ",
		m.renderColumn(slotAway, "AWAY", m.state.Selection.Away),
	))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if panel := m.renderPrediction(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}
	if m.state.Err != "" {
		b.WriteString(errorStyle.Render(m.state.Err) + mutedStyle.Render("  (esc to dismiss)") + "\n")
	}
	b.WriteString(mutedStyle.Render("↑/↓ move • tab switch side • enter pick • backspace clear • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderColumn(s slot, title, picked string) string {
	var lines []string
	header := title
	if picked != "" {
		header += ": " + picked
	}
	lines = append(lines, headerStyle.Render(header))

	start := 0
	if c := m.cursor[s]; c >= visibleTeams {
		start = c - visibleTeams + 1
	}
	end := min(start+visibleTeams, len(m.teams))
	for i := start; i < end; i++ {
		name := m.teams[i].Name
		switch {
		case s == m.active && i == m.cursor[s]:
			lines = append(lines, cursorStyle.Render("> "+name))
		case name == picked:
			lines = append(lines, selectedStyle.Render("✓ "+name))
		default:
			lines = append(lines, "  "+name)
		}
	}

	style := columnStyle
	if s == m.active {
		style = activeColumnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	switch m.state.Phase {
	case orchestrator.PhasePending:
		return mutedStyle.Render("Waiting for you to settle on a pair...")
	case orchestrator.PhaseInFlight:
		return mutedStyle.Render("Predicting...")
	case orchestrator.PhaseRevealing, orchestrator.PhaseSettled, orchestrator.PhaseFailed:
		return ""
	default:
		return mutedStyle.Render("Pick two different teams to get a prediction.")
	}
}

func (m Model) renderPrediction() string {
	s := m.state
	var sections []string

	if p := s.Result; p != nil {
		var lines []string
		lines = append(lines, headerStyle.Render(verdict(s, p)))
		lines = append(lines, probabilityLine(s.Selection.Home, p.HomeWinProbability, homeColor))
		lines = append(lines, probabilityLine("Draw", p.DrawProbability, drawColor))
		lines = append(lines, probabilityLine(s.Selection.Away, p.AwayWinProbability, awayColor))
		if s.RevealScore && p.HasScore() {
			lines = append(lines, scoreStyle.Render(fmt.Sprintf("%d - %d", *p.PredictedHomeScore, *p.PredictedAwayScore)))
		}
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Confidence %.0f%%", p.Confidence*100)))
		sections = append(sections, strings.Join(lines, "\n"))
	}

	// Stats are shown once an attempt has started; a side that never arrived
	// is rendered as unavailable only after the prediction is in.
	if s.Phase == orchestrator.PhaseInFlight || s.Result != nil {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			statsBlock(s.Selection.Home, s.HomeStats, s.Result != nil),
			"   ",
			statsBlock(s.Selection.Away, s.AwayStats, s.Result != nil),
		))
	}

	if len(sections) == 0 {
		return ""
	}
	return predictionStyle.Render(strings.Join(sections, "\n\n"))
}

func verdict(s orchestrator.State, p *backend.MatchPrediction) string {
	switch p.PredictedResult {
	case backend.HomeWin:
		return s.Selection.Home + " to win"
	case backend.AwayWin:
		return s.Selection.Away + " to win"
	default:
		return p.PredictedResult.Label()
	}
}

func probabilityLine(label string, p float64, color lipgloss.Color) string {
	filled := int(p*barWidth + 0.5)
	filled = max(0, min(filled, barWidth))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%-16s %s %3.0f%%", truncate(label, 16), bar, p*100)
}

func statsBlock(team string, stats *backend.TeamStats, settled bool) string {
	if stats == nil {
		if settled {
			return headerStyle.Render(team) + "\n" + mutedStyle.Render("Stats unavailable")
		}
		return headerStyle.Render(team) + "\n" + mutedStyle.Render("Loading stats...")
	}
	lines := []string{headerStyle.Render(team)}
	if stats.Position != nil {
		lines = append(lines, fmt.Sprintf("Position  %d", *stats.Position))
	}
	lines = append(lines,
		fmt.Sprintf("Points    %d", stats.Points),
		fmt.Sprintf("W-D-L     %d-%d-%d", stats.Wins, stats.Draws, stats.Losses),
		fmt.Sprintf("GD        %+d", stats.GoalDiff),
	)
	if len(stats.Form) > 0 {
		lines = append(lines, "Form      "+stats.Form.String())
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
