package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
)

// screen identifies the active view of a session.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenSettings
	screenScores
)

// SessionModel drives one player's flow: menu -> game, settings or high
// scores -> menu. It is the top-level model for local and SSH sessions.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	active   sessionScreen
	menu     MenuModel
	game     *GameModel
	settings SettingsModel
	scores   ScoreboardModel
	err      error
	quitting bool
}

// NewSessionModel creates a session that starts on the main menu.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	svc = svc.withDefaults()
	m := SessionModel{
		svc:    svc,
		config: cfg,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	best, err := m.svc.Scores.Load()
	if err != nil {
		m.svc.Logger.Warn("could not load high score", "error", err)
		best = 0
	}
	return NewMenuModel(m.config.ScreenW, m.config.ScreenH, best)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.active {
	case screenGame:
		return m.updateGame(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch *selected {
	case ChoiceStart:
		gm, err := NewGameModel(m.svc, m.config)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		gm.embedded = true
		m.game = &gm
		m.active = screenGame
		return m, m.game.Init()

	case ChoiceSettings:
		m.settings = NewSettingsModel(m.svc, m.config.ScreenW, m.config.ScreenH)
		m.active = screenSettings
		return m, m.settings.Init()

	case ChoiceHighScore:
		m.scores = NewScoreboardModel(m.svc, flight.ID, m.config.ScreenW, m.config.ScreenH)
		m.scores.embedded = true
		m.active = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if sm, ok := next.(SettingsModel); ok {
		m.settings = sm
	}

	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.Done() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows the latest high score.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.active = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.active {
	case screenGame:
		return m.game.View()
	case screenSettings:
		return m.settings.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session early, if any.
func (m SessionModel) Err() error {
	return m.err
}

// IsQuitting returns true once the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the full menu flow on the local terminal.
func RunSession(svc Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := final.(SessionModel); ok {
		sm.svc.Audio.StopTheme()
		return sm.Err()
	}
	return nil
}
