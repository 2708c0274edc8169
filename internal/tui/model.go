// Package tui is a terminal rendering layer. It paints purely from the
// orchestrator's published state and forwards key presses as selection
// changes.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/orchestrator"
)

// Driver is the part of the orchestrator the terminal UI needs.
type Driver interface {
	LoadTeams(ctx context.Context) ([]backend.Team, error)
	SetHome(team string)
	SetAway(team string)
	DismissError()
	Subscribe() (<-chan orchestrator.State, func())
}

type slot int

const (
	slotHome slot = iota
	slotAway
)

const (
	visibleTeams = 12
	loadTimeout  = 15 * time.Second
)

// Messages

type stateMsg orchestrator.State

type teamsMsg struct {
	teams []backend.Team
	err   error
}

type closedMsg struct{}

// Model is the bubbletea model for the team picker.
type Model struct {
	driver      Driver
	states      <-chan orchestrator.State
	unsubscribe func()

	teams    []backend.Team
	teamsErr error
	cursor   [2]int
	active   slot
	state    orchestrator.State
	quitting bool
}

// New subscribes to the driver's state stream.
func New(driver Driver) Model {
	states, unsubscribe := driver.Subscribe()
	return Model{
		driver:      driver,
		states:      states,
		unsubscribe: unsubscribe,
	}
}

// Run starts the program and blocks until the user quits.
func Run(driver Driver) error {
	m := New(driver)
	defer m.unsubscribe()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func waitForState(states <-chan orchestrator.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return closedMsg{}
		}
		return stateMsg(s)
	}
}

func loadTeams(driver Driver) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		teams, err := driver.LoadTeams(ctx)
		return teamsMsg{teams: teams, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.states), loadTeams(m.driver))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case stateMsg:
		m.state = orchestrator.State(msg)
		return m, waitForState(m.states)

	case teamsMsg:
		m.teams, m.teamsErr = msg.teams, msg.err
		return m, nil

	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor[m.active] > 0 {
			m.cursor[m.active]--
		}

	case "down", "j":
		if m.cursor[m.active] < len(m.teams)-1 {
			m.cursor[m.active]++
		}

	case "tab", "left", "right", "h", "l":
		if m.active == slotHome {
			m.active = slotAway
		} else {
			m.active = slotHome
		}

	case "enter", " ":
		if len(m.teams) == 0 {
			return m, nil
		}
		name := m.teams[m.cursor[m.active]].Name
		if m.active == slotHome {
			m.driver.SetHome(name)
		} else {
			m.driver.SetAway(name)
		}

	case "backspace", "delete":
		if m.active == slotHome {
			m.driver.SetHome("")
		} else {
			m.driver.SetAway("")
		}

	case "esc":
		m.driver.DismissError()

	case "r":
		if m.teamsErr != nil {
			m.teamsErr = nil
			return m, loadTeams(m.driver)
		}
	}
	return m, nil
}
